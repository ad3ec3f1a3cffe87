package storage

import (
	"github.com/feedsift/feedsift/app/content"
)

// RunRepository handles database operations for pipeline runs.
// Used by the run task to record progress and by the API for monitoring.
type RunRepository interface {
	CreateRun() (*Run, error)
	CompleteRun(runID string, counts RunCounts) error
	FailRun(runID string, runErr error) error
	GetRecentRuns(limit int) ([]Run, error)
	GetStats() (*Stats, error)
}

// ItemRepository handles database operations for classified items.
type ItemRepository interface {
	SaveItems(runID string, items []content.Item) error
	GetItemsByRun(runID string) ([]content.Item, error)
	GetRecentItems(limit int) ([]content.Item, error)
}
