package pipeline

import (
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/feedsift/feedsift/app/content"
	"github.com/feedsift/feedsift/app/profile"
)

var (
	htmlTagRe     = regexp.MustCompile(`<[^>]*>`)
	embeddedURLRe = regexp.MustCompile(`https?://\S+`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Cleaner validates and normalizes collected items before deduplication.
type Cleaner struct {
	profile *profile.Profile
	now     func() time.Time
}

func NewCleaner(p *profile.Profile) *Cleaner {
	return &Cleaner{profile: p, now: time.Now}
}

func (c *Cleaner) Run(items []content.Item) []content.Item {
	kept := make([]content.Item, 0, len(items))
	dropped := 0

	for _, item := range items {
		cleaned, reason := c.cleanItem(item)
		if reason != "" {
			slog.Debug("Item dropped by cleaner", "reason", reason, "title", item.Title)
			dropped++
			continue
		}
		kept = append(kept, cleaned)
	}

	if dropped > 0 {
		slog.Info("Cleaning completed", "input", len(items), "kept", len(kept), "dropped", dropped)
	}

	return kept
}

// cleanItem returns the cleaned item, or a non-empty drop reason.
func (c *Cleaner) cleanItem(item content.Item) (content.Item, string) {
	title := cleanText(item.Title)
	body := cleanText(item.Content)

	if title == "" {
		return item, "missing title"
	}
	if body == "" {
		return item, "missing content"
	}
	if strings.TrimSpace(item.URL) == "" {
		return item, "missing url"
	}

	if maxLen := c.profile.Cleaning.MaxContentLength; maxLen > 3 {
		runes := []rune(body)
		if len(runes) > maxLen {
			body = string(runes[:maxLen-3]) + "..."
		}
	}

	if len([]rune(body)) < c.profile.Cleaning.MinContentLength {
		return item, "content too short"
	}

	haystack := strings.ToLower(title + " " + body)
	for _, keyword := range c.profile.Filters.SpamKeywords {
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			return item, "spam keyword: " + keyword
		}
	}

	// Unparseable or missing dates pass through, age filtering is fail-open.
	if item.PublishedAt != nil && c.profile.Cleaning.MaxAgeDays > 0 {
		cutoff := c.now().AddDate(0, 0, -c.profile.Cleaning.MaxAgeDays)
		if item.PublishedAt.Before(cutoff) {
			return item, "too old"
		}
	}

	if title == body {
		return item, "content duplicates title"
	}

	item.Title = title
	item.Content = body
	item.URL = content.NormalizeURL(strings.TrimSpace(item.URL))

	return item, ""
}

// cleanText strips residual HTML, embedded URLs, and control characters,
// then collapses whitespace.
func cleanText(text string) string {
	text = htmlTagRe.ReplaceAllString(text, " ")
	text = embeddedURLRe.ReplaceAllString(text, " ")

	text = strings.Map(func(r rune) rune {
		if unicode.IsGraphic(r) || r == '\n' || r == '\t' {
			return r
		}
		return -1
	}, text)

	text = whitespaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
