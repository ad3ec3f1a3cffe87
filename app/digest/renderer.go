package digest

import (
	"fmt"
	"strings"

	"github.com/feedsift/feedsift/app/content"
)

var tierHeadings = []struct {
	tier    content.Tier
	heading string
}{
	{content.TierMustRead, "🔥 Must Read"},
	{content.TierRecommended, "⭐ Recommended"},
	{content.TierFYI, "📌 FYI"},
}

// Renderer turns tiered items into the daily Markdown digest: one section
// per tier, grouped by topic, highest scores first.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Run(date string, items []content.Item) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Digest — %s\n\n", date)
	fmt.Fprintf(&b, "%d items\n", len(items))

	for _, section := range tierHeadings {
		tierItems := filterTier(items, section.tier)
		if len(tierItems) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n## %s\n", section.heading)

		for _, topic := range topicOrder(tierItems) {
			fmt.Fprintf(&b, "\n### %s\n\n", topic)
			for _, item := range tierItems {
				if item.Topic != topic {
					continue
				}
				r.renderItem(&b, item)
			}
		}
	}

	return b.String()
}

func (r *Renderer) renderItem(b *strings.Builder, item content.Item) {
	fmt.Fprintf(b, "- **[%s](%s)** (%d)\n", item.Title, item.URL, item.Score)

	if item.Summary != "" {
		fmt.Fprintf(b, "  %s\n", item.Summary)
	}

	var meta []string
	if item.Source != "" {
		meta = append(meta, item.Source)
	}
	if len(item.Tags) > 0 {
		meta = append(meta, strings.Join(item.Tags, ", "))
	}
	if item.Actionable {
		meta = append(meta, "actionable")
	}
	if len(meta) > 0 {
		fmt.Fprintf(b, "  _%s_\n", strings.Join(meta, " · "))
	}
}

func filterTier(items []content.Item, tier content.Tier) []content.Item {
	var out []content.Item
	for _, item := range items {
		if item.Tier == tier {
			if item.Topic == "" {
				item.Topic = "Other"
			}
			out = append(out, item)
		}
	}
	return out
}

// topicOrder returns topics in first-appearance order, which follows the
// score ordering of the input.
func topicOrder(items []content.Item) []string {
	seen := map[string]bool{}
	var topics []string
	for _, item := range items {
		if !seen[item.Topic] {
			seen[item.Topic] = true
			topics = append(topics, item.Topic)
		}
	}
	return topics
}
