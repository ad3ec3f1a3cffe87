package llm

import (
	"context"

	"github.com/feedsift/feedsift/app/content"
)

// Result is one classification verdict, positionally matched to the batch
// by Index.
type Result struct {
	Index           int      `json:"idx"`
	Score           int      `json:"score"`
	Topic           string   `json:"topic"`
	Summary         string   `json:"summary"`
	Tags            []string `json:"tags"`
	RelevanceReason string   `json:"relevance_reason"`
	Actionable      bool     `json:"actionable"`
	Skip            bool     `json:"skip"`
}

// Client classifies a batch of items. Implementations are single providers
// (Gemini, OpenAI) or the fallback Chain combining them.
type Client interface {
	Name() string
	ClassifyBatch(ctx context.Context, items []content.Item) ([]Result, error)
}
