package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/feedsift/feedsift/app/collect"
	"github.com/feedsift/feedsift/app/content"
	"github.com/feedsift/feedsift/app/digest"
	"github.com/feedsift/feedsift/app/pipeline"
	"github.com/feedsift/feedsift/app/profile"
	"github.com/feedsift/feedsift/app/storage"
)

// Pipeline bundles everything one run needs. Built once in main and shared
// by the scheduler and the API.
type Pipeline struct {
	Profile      *profile.Profile
	Collectors   []collect.Collector
	Cleaner      *pipeline.Cleaner
	Deduplicator *pipeline.Deduplicator
	Classifier   *pipeline.Classifier
	Extractor    *collect.Extractor
	RunRepo      storage.RunRepository
	ItemRepo     storage.ItemRepository
	Renderer     *digest.Renderer
	DigestStore  *storage.DigestStore
}

type RunPipelineTask struct {
	Task
	pipeline *Pipeline
}

func NewRunPipelineTask(p *Pipeline) *RunPipelineTask {
	return &RunPipelineTask{
		Task:     NewTask(TaskTypeRunPipeline),
		pipeline: p,
	}
}

func (t *RunPipelineTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	p := t.pipeline

	run, err := p.RunRepo.CreateRun()
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	classified, counts, err := t.process(ctx)
	if err != nil {
		if failErr := p.RunRepo.FailRun(run.ID, err); failErr != nil {
			slog.Error("Failed to record run failure", "run_id", run.ID, "error", failErr)
		}
		return err
	}

	if err := p.ItemRepo.SaveItems(run.ID, classified); err != nil {
		if failErr := p.RunRepo.FailRun(run.ID, err); failErr != nil {
			slog.Error("Failed to record run failure", "run_id", run.ID, "error", failErr)
		}
		return fmt.Errorf("failed to save items: %w", err)
	}

	if err := p.RunRepo.CompleteRun(run.ID, counts); err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}

	date := time.Now().Format("2006-01-02")
	markdown := p.Renderer.Run(date, classified)
	if path, err := p.DigestStore.Save(date, markdown); err != nil {
		slog.Error("Failed to write digest", "error", err)
	} else {
		slog.Debug("Digest written", "path", path)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"run_id", run.ID,
		"duration", t.GetDuration(),
		"collected", counts.Collected,
		"cleaned", counts.Cleaned,
		"deduplicated", counts.Deduplicated,
		"classified", counts.Classified)

	return nil
}

func (t *RunPipelineTask) process(ctx context.Context) ([]content.Item, storage.RunCounts, error) {
	p := t.pipeline
	var counts storage.RunCounts

	collected := t.collectAll(ctx)
	counts.Collected = len(collected)
	if len(collected) == 0 {
		return nil, counts, fmt.Errorf("no items collected from any source")
	}

	cleaned := p.Cleaner.Run(collected)
	counts.Cleaned = len(cleaned)

	deduplicated := p.Deduplicator.Run(cleaned)
	counts.Deduplicated = len(deduplicated)

	if p.Extractor != nil && p.Profile.Extraction.Enabled {
		deduplicated = p.Extractor.Enrich(ctx, deduplicated,
			p.Profile.Extraction.MinContentLength, p.Profile.Extraction.MaxFetches)
	}

	classified := p.Classifier.Run(ctx, deduplicated)
	counts.Classified = len(classified)

	return classified, counts, nil
}

// collectAll fans out to every collector concurrently and concatenates the
// results. A failing collector is logged and skipped; the run proceeds with
// whatever the others returned.
func (t *RunPipelineTask) collectAll(ctx context.Context) []content.Item {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		items []content.Item
	)

	for _, collector := range t.pipeline.Collectors {
		wg.Add(1)
		go func(c collect.Collector) {
			defer wg.Done()

			collected, err := c.Collect(ctx)
			if err != nil {
				slog.Error("Collector failed", "collector", c.Name(), "error", err)
				return
			}

			slog.Debug("Collector finished", "collector", c.Name(), "items", len(collected))

			mu.Lock()
			items = append(items, collected...)
			mu.Unlock()
		}(collector)
	}

	wg.Wait()

	return items
}
