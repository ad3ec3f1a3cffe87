package collect

import (
	"context"
	"log/slog"

	"github.com/mmcdole/gofeed"

	"github.com/feedsift/feedsift/app/content"
	"github.com/feedsift/feedsift/app/profile"
)

// Papers pulls research feeds (arXiv and similar) via gofeed. Individual
// feed failures are logged and skipped so one dead feed never blocks the
// rest.
type Papers struct {
	feeds  []string
	parser *gofeed.Parser
}

func NewPapers(userAgent string, p *profile.Profile) *Papers {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent

	return &Papers{
		feeds:  p.Sources.Papers.Feeds,
		parser: parser,
	}
}

func (p *Papers) Name() string {
	return "papers"
}

func (p *Papers) Collect(ctx context.Context) ([]content.Item, error) {
	var items []content.Item

	for _, feedURL := range p.feeds {
		feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			slog.Warn("Failed to fetch paper feed", "url", feedURL, "error", err)
			continue
		}

		for _, entry := range feed.Items {
			item := content.Item{
				Title:       entry.Title,
				Content:     StripHTML(entry.Description),
				URL:         entry.Link,
				Source:      feed.Title,
				PublishedAt: entry.PublishedParsed,
			}
			if entry.Author != nil {
				item.Author = entry.Author.Name
			}
			if len(entry.Categories) > 0 {
				item.Tags = entry.Categories
			}
			items = append(items, item)
		}
	}

	slog.Debug("Paper collection completed", "feeds", len(p.feeds), "items", len(items))

	return items, nil
}
