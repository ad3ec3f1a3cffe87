package tasks

import (
	"testing"
	"time"
)

func TestTask_RetryAccounting(t *testing.T) {
	task := NewTask(TaskTypeRunPipeline)

	if task.GetType() != TaskTypeRunPipeline {
		t.Errorf("Expected type run_pipeline, got %s", task.GetType())
	}
	if task.GetID() == "" {
		t.Error("Expected task ID to be set")
	}
	if !task.CanRetry() {
		t.Error("Expected fresh task to allow retries")
	}

	for i := 0; i < DefaultMaxRetries; i++ {
		task.IncrementRetryCount()
	}
	if task.CanRetry() {
		t.Error("Expected retries exhausted after max increments")
	}
	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("Expected retry count %d, got %d", DefaultMaxRetries, task.GetRetryCount())
	}
}

func TestTask_Duration(t *testing.T) {
	task := NewTask(TaskTypePruneHistory)

	if task.GetDuration() != 0 {
		t.Error("Expected zero duration before start")
	}

	task.Start()
	time.Sleep(time.Millisecond)

	if task.GetDuration() <= 0 {
		t.Error("Expected positive duration after start")
	}
}
