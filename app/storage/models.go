package storage

import (
	"time"
)

// Run represents one pipeline execution.
type Run struct {
	ID           string
	StartedAt    time.Time
	CompletedAt  *time.Time
	Status       string // running, completed, failed
	Collected    int
	Cleaned      int
	Deduplicated int
	Classified   int
	Error        string
}

// RunCounts carries the per-stage item counts recorded when a run finishes.
type RunCounts struct {
	Collected    int
	Cleaned      int
	Deduplicated int
	Classified   int
}

// Stats is the aggregate view served by the API.
type Stats struct {
	TotalRuns   int
	TotalItems  int
	LastRunAt   *time.Time
	LastRunTier map[string]int
}
