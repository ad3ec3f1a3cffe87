package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/feedsift/feedsift/app/collect"
	"github.com/feedsift/feedsift/app/content"
	"github.com/feedsift/feedsift/app/digest"
	"github.com/feedsift/feedsift/app/history"
	"github.com/feedsift/feedsift/app/pipeline"
	"github.com/feedsift/feedsift/app/profile"
	"github.com/feedsift/feedsift/app/storage"
)

type fakeCollector struct {
	name  string
	items []content.Item
	err   error
}

func (f *fakeCollector) Name() string { return f.name }

func (f *fakeCollector) Collect(ctx context.Context) ([]content.Item, error) {
	return f.items, f.err
}

type fakeRunRepo struct {
	created   int
	completed int
	failed    int
	counts    storage.RunCounts
}

func (f *fakeRunRepo) CreateRun() (*storage.Run, error) {
	f.created++
	return &storage.Run{ID: "run-1", Status: "running"}, nil
}

func (f *fakeRunRepo) CompleteRun(runID string, counts storage.RunCounts) error {
	f.completed++
	f.counts = counts
	return nil
}

func (f *fakeRunRepo) FailRun(runID string, runErr error) error {
	f.failed++
	return nil
}

func (f *fakeRunRepo) GetRecentRuns(limit int) ([]storage.Run, error) { return nil, nil }
func (f *fakeRunRepo) GetStats() (*storage.Stats, error)              { return &storage.Stats{}, nil }

type fakeItemRepo struct {
	saved []content.Item
	err   error
}

func (f *fakeItemRepo) SaveItems(runID string, items []content.Item) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, items...)
	return nil
}

func (f *fakeItemRepo) GetItemsByRun(runID string) ([]content.Item, error) { return f.saved, nil }
func (f *fakeItemRepo) GetRecentItems(limit int) ([]content.Item, error)   { return f.saved, nil }

func testPipeline(t *testing.T, collectors []collect.Collector, runRepo storage.RunRepository, itemRepo storage.ItemRepository) *Pipeline {
	t.Helper()

	p, err := profile.Load("nonexistent.yml")
	if err != nil {
		t.Fatalf("Failed to load default profile: %v", err)
	}

	store := history.NewMemoryStore()

	return &Pipeline{
		Profile:      p,
		Collectors:   collectors,
		Cleaner:      pipeline.NewCleaner(p),
		Deduplicator: pipeline.NewDeduplicator(store, p),
		Classifier:   pipeline.NewClassifier(p, nil),
		RunRepo:      runRepo,
		ItemRepo:     itemRepo,
		Renderer:     digest.NewRenderer(),
		DigestStore:  storage.NewDigestStore(t.TempDir()),
	}
}

func relevantItem(title string) content.Item {
	return content.Item{
		Title:   title,
		Content: "A long enough writeup about an llm release with plenty of detail to classify.",
		URL:     "https://example.com/" + strings.ReplaceAll(strings.ToLower(title), " ", "-"),
	}
}

func TestRunPipelineTask_EndToEnd(t *testing.T) {
	collector := &fakeCollector{name: "fake", items: []content.Item{
		relevantItem("First llm story"),
		relevantItem("Second llm story"),
	}}
	runRepo := &fakeRunRepo{}
	itemRepo := &fakeItemRepo{}

	task := NewRunPipelineTask(testPipeline(t, []collect.Collector{collector}, runRepo, itemRepo))

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if runRepo.created != 1 || runRepo.completed != 1 {
		t.Errorf("Expected run created and completed, got created=%d completed=%d",
			runRepo.created, runRepo.completed)
	}
	if runRepo.counts.Collected != 2 {
		t.Errorf("Expected 2 collected, got %d", runRepo.counts.Collected)
	}
	if len(itemRepo.saved) == 0 {
		t.Error("Expected classified items saved")
	}
	for _, item := range itemRepo.saved {
		if item.Tier == "" || item.Tier == content.TierSkip {
			t.Errorf("Expected tiered items only, got %q for %q", item.Tier, item.Title)
		}
	}
}

func TestRunPipelineTask_FailingCollectorSkipped(t *testing.T) {
	good := &fakeCollector{name: "good", items: []content.Item{relevantItem("Only llm story")}}
	bad := &fakeCollector{name: "bad", err: errors.New("upstream down")}
	runRepo := &fakeRunRepo{}
	itemRepo := &fakeItemRepo{}

	task := NewRunPipelineTask(testPipeline(t, []collect.Collector{good, bad}, runRepo, itemRepo))

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected run to proceed with partial sources, got: %v", err)
	}
	if runRepo.counts.Collected != 1 {
		t.Errorf("Expected 1 collected item from the healthy source, got %d", runRepo.counts.Collected)
	}
}

func TestRunPipelineTask_AllCollectorsFail(t *testing.T) {
	bad := &fakeCollector{name: "bad", err: errors.New("upstream down")}
	runRepo := &fakeRunRepo{}

	task := NewRunPipelineTask(testPipeline(t, []collect.Collector{bad}, runRepo, &fakeItemRepo{}))

	if err := task.Execute(context.Background()); err == nil {
		t.Error("Expected error when nothing is collected")
	}
	if runRepo.failed != 1 {
		t.Errorf("Expected run marked failed, got %d", runRepo.failed)
	}
}

func TestRunPipelineTask_SaveFailureMarksRunFailed(t *testing.T) {
	collector := &fakeCollector{name: "fake", items: []content.Item{relevantItem("Some llm story")}}
	runRepo := &fakeRunRepo{}
	itemRepo := &fakeItemRepo{err: errors.New("disk full")}

	task := NewRunPipelineTask(testPipeline(t, []collect.Collector{collector}, runRepo, itemRepo))

	if err := task.Execute(context.Background()); err == nil {
		t.Error("Expected error when saving items fails")
	}
	if runRepo.failed != 1 {
		t.Errorf("Expected run marked failed, got %d", runRepo.failed)
	}
}

func TestPruneHistoryTask(t *testing.T) {
	p, err := profile.Load("nonexistent.yml")
	if err != nil {
		t.Fatalf("Failed to load default profile: %v", err)
	}

	store := history.NewMemoryStore()
	dedup := pipeline.NewDeduplicator(store, p)

	task := NewPruneHistoryTask(dedup)
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if store.SaveCount() != 1 {
		t.Errorf("Expected history persisted once, got %d saves", store.SaveCount())
	}
}
