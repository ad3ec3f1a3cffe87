package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/feedsift/feedsift/app/content"
	"github.com/feedsift/feedsift/app/llm"
	"github.com/feedsift/feedsift/app/profile"
)

// Pass-1 keyword scores on the 0-10 scale.
const (
	keywordScoreHigh   = 8
	keywordScoreMedium = 5
)

// directAcceptScore maps a pass-1 high-keyword accept onto the 0-100 scale
// used for tiering.
const directAcceptScore = 80

// fallbackScore is assigned to every item of a failed LLM batch: include at
// low confidence rather than drop silently.
const fallbackScore = 40

// Classifier scores, categorizes, and tiers items in two passes: a
// deterministic keyword pass, then a batched LLM pass for borderline items.
type Classifier struct {
	profile *profile.Profile
	client  llm.Client
}

func NewClassifier(p *profile.Profile, client llm.Client) *Classifier {
	return &Classifier{profile: p, client: client}
}

// Run returns the tiered items, capped per tier and sorted by score
// descending. Items below the fyi threshold are excluded.
func (c *Classifier) Run(ctx context.Context, items []content.Item) []content.Item {
	accepted, borderline := c.keywordPass(items)

	slog.Info("Keyword pass completed",
		"input", len(items),
		"direct_accepts", len(accepted),
		"borderline", len(borderline),
		"dropped", len(items)-len(accepted)-len(borderline))

	accepted = append(accepted, c.llmPass(ctx, borderline)...)

	return c.applyTiers(accepted)
}

// keywordPass scores every item against the high and medium keyword tiers.
// High matches are accepted directly with a category, medium matches queue
// for the LLM pass, the rest are dropped.
func (c *Classifier) keywordPass(items []content.Item) (accepted, borderline []content.Item) {
	for _, item := range items {
		haystack := strings.ToLower(item.Title + " " + item.Content)

		score, keyword := 0, ""
		if match := firstMatch(haystack, c.profile.Keywords.High); match != "" {
			score, keyword = keywordScoreHigh, match
		} else if match := firstMatch(haystack, c.profile.Keywords.Medium); match != "" {
			score, keyword = keywordScoreMedium, match
		}

		switch {
		case score >= keywordScoreHigh:
			item.Score = directAcceptScore
			item.MatchedKeyword = keyword
			item.Topic = c.categorize(haystack)
			accepted = append(accepted, item)
		case score >= keywordScoreMedium:
			item.MatchedKeyword = keyword
			borderline = append(borderline, item)
		}
	}
	return accepted, borderline
}

// llmPass classifies borderline items in fixed-size batches. The borderline
// cap bounds total cost per run; overflow items are dropped.
func (c *Classifier) llmPass(ctx context.Context, borderline []content.Item) []content.Item {
	if len(borderline) == 0 {
		return nil
	}
	if c.client == nil {
		slog.Warn("No LLM client configured, applying fallback defaults", "items", len(borderline))
		return c.fallback(capped(borderline, c.profile.LLM.BorderlineCap))
	}

	borderline = capped(borderline, c.profile.LLM.BorderlineCap)

	batchSize := c.profile.LLM.BatchSize
	delay := time.Duration(c.profile.LLM.BatchDelayMs) * time.Millisecond

	classified := make([]content.Item, 0, len(borderline))
	for start := 0; start < len(borderline); start += batchSize {
		end := min(start+batchSize, len(borderline))
		batch := borderline[start:end]

		if start > 0 && delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				slog.Warn("Classification cancelled, applying fallback defaults", "remaining", len(borderline)-start)
				return append(classified, c.fallback(borderline[start:])...)
			}
		}

		results, err := c.client.ClassifyBatch(ctx, batch)
		if err != nil {
			slog.Warn("LLM batch failed, applying fallback defaults", "error", err, "items", len(batch))
			classified = append(classified, c.fallback(batch)...)
			continue
		}

		classified = append(classified, c.applyResults(batch, results)...)
	}

	return classified
}

// applyResults merges batch results onto items by index. Items the response
// skipped get fallback defaults so nothing is lost.
func (c *Classifier) applyResults(batch []content.Item, results []llm.Result) []content.Item {
	byIndex := make(map[int]llm.Result, len(results))
	for _, result := range results {
		byIndex[result.Index] = result
	}

	merged := make([]content.Item, 0, len(batch))
	for i, item := range batch {
		result, ok := byIndex[i]
		if !ok {
			merged = append(merged, c.defaultItem(item))
			continue
		}

		item.Score = result.Score
		item.Topic = c.mapTopic(result.Topic)
		item.Summary = result.Summary
		item.Tags = result.Tags
		item.RelevanceReason = result.RelevanceReason
		item.Actionable = result.Actionable
		item.Skip = result.Skip
		merged = append(merged, item)
	}
	return merged
}

func (c *Classifier) fallback(batch []content.Item) []content.Item {
	out := make([]content.Item, 0, len(batch))
	for _, item := range batch {
		out = append(out, c.defaultItem(item))
	}
	return out
}

func (c *Classifier) defaultItem(item content.Item) content.Item {
	item.Score = fallbackScore
	item.Topic = "Other"
	item.Skip = false
	item.Summary = truncateTitle(item.Title)
	item.Tags = nil
	return item
}

// categorize picks the first profile category whose keywords match,
// falling back to "Other". Category order is significant.
func (c *Classifier) categorize(haystack string) string {
	for _, category := range c.profile.Categories {
		if firstMatch(haystack, category.Keywords) != "" {
			return category.Name
		}
	}
	return "Other"
}

// mapTopic maps a free-form response topic onto the canonical category set
// by case-insensitive substring match in either direction.
func (c *Classifier) mapTopic(topic string) string {
	normalized := strings.ToLower(strings.TrimSpace(topic))
	if normalized == "" {
		return "Other"
	}

	for _, category := range c.profile.Categories {
		name := strings.ToLower(category.Name)
		if strings.Contains(name, normalized) || strings.Contains(normalized, name) {
			return category.Name
		}
	}
	return "Other"
}

// applyTiers assigns tiers by score thresholds, then caps each tier to its
// limit keeping the highest-scoring items. Sorting is stable so equal
// scores keep arrival order.
func (c *Classifier) applyTiers(items []content.Item) []content.Item {
	byTier := map[content.Tier][]content.Item{}

	for _, item := range items {
		if item.Skip {
			continue
		}
		tier := c.tierFor(item.Score)
		if tier == content.TierSkip {
			continue
		}
		item.Tier = tier
		byTier[tier] = append(byTier[tier], item)
	}

	limits := map[content.Tier]int{
		content.TierMustRead:    c.profile.Limits.MustRead,
		content.TierRecommended: c.profile.Limits.Recommended,
		content.TierFYI:         c.profile.Limits.FYI,
	}

	out := make([]content.Item, 0, len(items))
	for _, tier := range []content.Tier{content.TierMustRead, content.TierRecommended, content.TierFYI} {
		tierItems := byTier[tier]
		sort.SliceStable(tierItems, func(i, j int) bool {
			return tierItems[i].Score > tierItems[j].Score
		})
		if limit := limits[tier]; len(tierItems) > limit {
			tierItems = tierItems[:limit]
		}
		out = append(out, tierItems...)
	}

	slog.Info("Tiering completed",
		"must_read", len(byTier[content.TierMustRead]),
		"recommended", len(byTier[content.TierRecommended]),
		"fyi", len(byTier[content.TierFYI]),
		"output", len(out))

	return out
}

// tierFor maps a 0-100 score onto a tier. Scores below the fyi threshold,
// including a zero score, land in skip.
func (c *Classifier) tierFor(score int) content.Tier {
	switch {
	case score >= c.profile.Scoring.MustRead:
		return content.TierMustRead
	case score >= c.profile.Scoring.Recommended:
		return content.TierRecommended
	case score >= c.profile.Scoring.FYI:
		return content.TierFYI
	default:
		return content.TierSkip
	}
}

func firstMatch(haystack string, keywords []string) string {
	for _, keyword := range keywords {
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			return keyword
		}
	}
	return ""
}

func capped(items []content.Item, limit int) []content.Item {
	if limit > 0 && len(items) > limit {
		slog.Debug("Borderline cap applied", "cap", limit, "dropped", len(items)-limit)
		return items[:limit]
	}
	return items
}
