package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/feedsift/feedsift/app/pipeline"
)

type PruneHistoryTask struct {
	Task
	deduplicator *pipeline.Deduplicator
}

func NewPruneHistoryTask(deduplicator *pipeline.Deduplicator) *PruneHistoryTask {
	return &PruneHistoryTask{
		Task:         NewTask(TaskTypePruneHistory),
		deduplicator: deduplicator,
	}
}

func (t *PruneHistoryTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.deduplicator.Maintain(); err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	slog.Info("Task completed", "type", t.GetType(), "duration", t.GetDuration())

	return nil
}
