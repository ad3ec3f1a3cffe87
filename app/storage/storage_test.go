package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/feedsift/feedsift/app/content"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func TestRunRepository_Lifecycle(t *testing.T) {
	repo := NewRunRepository(newTestDB(t))

	run, err := repo.CreateRun()
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}
	if run.ID == "" {
		t.Error("Expected run ID to be set")
	}
	if run.Status != "running" {
		t.Errorf("Expected status 'running', got %q", run.Status)
	}

	counts := RunCounts{Collected: 100, Cleaned: 80, Deduplicated: 60, Classified: 25}
	if err := repo.CompleteRun(run.ID, counts); err != nil {
		t.Fatalf("CompleteRun failed: %v", err)
	}

	runs, err := repo.GetRecentRuns(10)
	if err != nil {
		t.Fatalf("GetRecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	if runs[0].Status != "completed" {
		t.Errorf("Expected status 'completed', got %q", runs[0].Status)
	}
	if runs[0].Collected != 100 || runs[0].Classified != 25 {
		t.Errorf("Expected counts recorded, got collected=%d classified=%d",
			runs[0].Collected, runs[0].Classified)
	}
	if runs[0].CompletedAt == nil {
		t.Error("Expected completed_at to be set")
	}
}

func TestRunRepository_FailRun(t *testing.T) {
	repo := NewRunRepository(newTestDB(t))

	run, err := repo.CreateRun()
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	if err := repo.FailRun(run.ID, errors.New("collector exploded")); err != nil {
		t.Fatalf("FailRun failed: %v", err)
	}

	runs, err := repo.GetRecentRuns(1)
	if err != nil {
		t.Fatalf("GetRecentRuns failed: %v", err)
	}
	if runs[0].Status != "failed" {
		t.Errorf("Expected status 'failed', got %q", runs[0].Status)
	}
	if runs[0].Error != "collector exploded" {
		t.Errorf("Expected error recorded, got %q", runs[0].Error)
	}
}

func TestItemRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	runRepo := NewRunRepository(db)
	itemRepo := NewItemRepository(db)

	run, err := runRepo.CreateRun()
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	publishedAt := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	items := []content.Item{
		{
			Title:       "Big release",
			Content:     "Something shipped.",
			URL:         "https://example.com/a",
			Source:      "Example Blog",
			PublishedAt: &publishedAt,
			Score:       85,
			Tier:        content.TierMustRead,
			Topic:       "LLM & Agents",
			Summary:     "A release happened",
			Tags:        []string{"release", "llm"},
			ContentHash: "abc123",
			Actionable:  true,
		},
		{
			Title: "Minor note", Content: "Small thing.", URL: "https://example.com/b",
			Score: 45, Tier: content.TierFYI, Topic: "Other",
		},
	}

	if err := itemRepo.SaveItems(run.ID, items); err != nil {
		t.Fatalf("SaveItems failed: %v", err)
	}

	loaded, err := itemRepo.GetItemsByRun(run.ID)
	if err != nil {
		t.Fatalf("GetItemsByRun failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(loaded))
	}

	// Ordered by score descending
	first := loaded[0]
	if first.Title != "Big release" {
		t.Errorf("Expected highest-scoring item first, got %q", first.Title)
	}
	if first.Tier != content.TierMustRead {
		t.Errorf("Expected must_read tier, got %s", first.Tier)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "release" {
		t.Errorf("Expected tags round-tripped, got %v", first.Tags)
	}
	if !first.Actionable {
		t.Error("Expected actionable flag round-tripped")
	}
	if first.PublishedAt == nil || !first.PublishedAt.Equal(publishedAt) {
		t.Errorf("Expected published_at round-tripped, got %v", first.PublishedAt)
	}
}

func TestRunRepository_Stats(t *testing.T) {
	db := newTestDB(t)
	runRepo := NewRunRepository(db)
	itemRepo := NewItemRepository(db)

	run, err := runRepo.CreateRun()
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	items := []content.Item{
		{Title: "a", Tier: content.TierMustRead, Score: 90},
		{Title: "b", Tier: content.TierFYI, Score: 35},
		{Title: "c", Tier: content.TierFYI, Score: 40},
	}
	if err := itemRepo.SaveItems(run.ID, items); err != nil {
		t.Fatalf("SaveItems failed: %v", err)
	}
	if err := runRepo.CompleteRun(run.ID, RunCounts{Classified: 3}); err != nil {
		t.Fatalf("CompleteRun failed: %v", err)
	}

	stats, err := runRepo.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalRuns != 1 || stats.TotalItems != 3 {
		t.Errorf("Expected 1 run and 3 items, got %d and %d", stats.TotalRuns, stats.TotalItems)
	}
	if stats.LastRunAt == nil {
		t.Error("Expected last run timestamp")
	}
	if stats.LastRunTier["fyi"] != 2 || stats.LastRunTier["must_read"] != 1 {
		t.Errorf("Expected tier counts from last run, got %v", stats.LastRunTier)
	}
}

func TestDigestStore_SaveAndLoad(t *testing.T) {
	store := NewDigestStore(t.TempDir())

	path, err := store.Save("2025-06-10", "# Digest\n\ncontent")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Base(path) != "2025-06-10.md" {
		t.Errorf("Expected date-named file, got %q", path)
	}

	loaded, err := store.Load("2025-06-10")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != "# Digest\n\ncontent" {
		t.Errorf("Expected digest round-tripped, got %q", loaded)
	}
}

func TestDigestStore_LoadMissing(t *testing.T) {
	store := NewDigestStore(t.TempDir())

	if _, err := store.Load("2020-01-01"); err == nil {
		t.Error("Expected error for missing digest")
	}
}
