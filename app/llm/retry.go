package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const maxAttempts = 3

// withRetry runs call up to maxAttempts times with a short growing delay.
// The caller's context bounds the whole sequence.
func withRetry(ctx context.Context, provider string, call func() (string, error)) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(time.Duration(attempt-1) * time.Second):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		response, err := call()
		if err == nil {
			return response, nil
		}
		lastErr = err
		slog.Warn("LLM call failed", "provider", provider, "attempt", attempt, "error", err)
	}

	return "", fmt.Errorf("%s failed after %d attempts: %w", provider, maxAttempts, lastErr)
}
