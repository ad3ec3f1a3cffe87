package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ RunRepository = (*RunRepo)(nil)

// RunRepo is the SQLite-backed RunRepository.
type RunRepo struct {
	db *DB
}

func NewRunRepository(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) CreateRun() (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Status:    "running",
	}

	_, err := r.db.Exec(`
		INSERT INTO runs (id, started_at, status)
		VALUES (?, ?, ?)
	`, run.ID, run.StartedAt, run.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	return run, nil
}

func (r *RunRepo) CompleteRun(runID string, counts RunCounts) error {
	now := time.Now().UTC()

	_, err := r.db.Exec(`
		UPDATE runs
		SET completed_at = ?, status = 'completed',
		    collected = ?, cleaned = ?, deduplicated = ?, classified = ?
		WHERE id = ?
	`, now, counts.Collected, counts.Cleaned, counts.Deduplicated, counts.Classified, runID)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}

	return nil
}

func (r *RunRepo) FailRun(runID string, runErr error) error {
	now := time.Now().UTC()

	_, err := r.db.Exec(`
		UPDATE runs
		SET completed_at = ?, status = 'failed', error = ?
		WHERE id = ?
	`, now, runErr.Error(), runID)
	if err != nil {
		return fmt.Errorf("failed to mark run failed: %w", err)
	}

	return nil
}

func (r *RunRepo) GetRecentRuns(limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT id, started_at, completed_at, status, collected, cleaned, deduplicated, classified, error
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		err := rows.Scan(&run.ID, &run.StartedAt, &run.CompletedAt, &run.Status,
			&run.Collected, &run.Cleaned, &run.Deduplicated, &run.Classified, &run.Error)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *RunRepo) GetStats() (*Stats, error) {
	stats := &Stats{LastRunTier: map[string]int{}}

	err := r.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&stats.TotalRuns)
	if err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}

	err = r.db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&stats.TotalItems)
	if err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	var lastRunID string
	var lastRunAt time.Time
	err = r.db.QueryRow(`
		SELECT id, started_at FROM runs
		WHERE status = 'completed'
		ORDER BY started_at DESC
		LIMIT 1
	`).Scan(&lastRunID, &lastRunAt)
	if err == sql.ErrNoRows {
		return stats, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last run: %w", err)
	}
	stats.LastRunAt = &lastRunAt

	rows, err := r.db.Query(`
		SELECT tier, COUNT(*) FROM items
		WHERE run_id = ?
		GROUP BY tier
	`, lastRunID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tier counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tier string
		var count int
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, fmt.Errorf("failed to scan tier count: %w", err)
		}
		stats.LastRunTier[tier] = count
	}

	return stats, rows.Err()
}
