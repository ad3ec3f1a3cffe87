package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/feedsift/feedsift/app/content"
)

// Chain tries capability-equivalent providers in order, falling back to the
// next on failure.
type Chain struct {
	providers []Client
}

func NewChain(providers ...Client) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) Name() string {
	return "chain"
}

func (c *Chain) ClassifyBatch(ctx context.Context, items []content.Item) ([]Result, error) {
	if len(c.providers) == 0 {
		return nil, fmt.Errorf("no LLM providers configured")
	}

	var lastErr error
	for _, provider := range c.providers {
		results, err := provider.ClassifyBatch(ctx, items)
		if err == nil {
			return results, nil
		}
		lastErr = err
		slog.Warn("LLM provider failed, trying next", "provider", provider.Name(), "error", err)
	}

	return nil, fmt.Errorf("all LLM providers failed: %w", lastErr)
}
