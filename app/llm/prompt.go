package llm

import (
	"fmt"
	"strings"

	"github.com/feedsift/feedsift/app/content"
	"github.com/feedsift/feedsift/app/profile"
)

const (
	promptTitleLimit   = 100
	promptContentLimit = 400
)

// BuildPrompt renders the classification request for one batch: reader
// context from the profile, the allowed category set, the numbered items,
// and a strict JSON-array output instruction.
func BuildPrompt(p *profile.Profile, items []content.Item) string {
	var b strings.Builder

	b.WriteString("You are a content relevance analyst for a reader with this profile:\n")
	fmt.Fprintf(&b, "Role: %s\n", p.Identity.Role)
	if len(p.Identity.Interests) > 0 {
		fmt.Fprintf(&b, "Interests: %s\n", strings.Join(p.Identity.Interests, ", "))
	}

	b.WriteString("\nAllowed topics (pick exactly one per item):\n")
	for _, category := range p.Categories {
		fmt.Fprintf(&b, "- %s\n", category.Name)
	}
	b.WriteString("- Other\n")

	b.WriteString("\nItems to classify:\n")
	for i, item := range items {
		fmt.Fprintf(&b, "[%d] title: %s\n", i, truncate(item.Title, promptTitleLimit))
		fmt.Fprintf(&b, "    content: %s\n", truncate(item.Content, promptContentLimit))
		if item.Source != "" {
			fmt.Fprintf(&b, "    source: %s\n", item.Source)
		}
	}

	b.WriteString(`
Return ONLY a JSON array, one object per item, no prose:
[{"idx": <item number>, "score": <0-100 relevance for this reader>,
"topic": <one allowed topic>, "summary": <one sentence, same language as the item>,
"tags": [<up to 3 short tags>], "relevance_reason": <one short phrase>,
"actionable": <true if the reader can act on it>, "skip": <true only for ads or junk>}]

Scoring guide: 80+ essential reading, 50-79 worthwhile, 30-49 marginal, below 30 irrelevant.
`)

	return b.String()
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return text
}
