package collect

import (
	"strings"
	"time"

	"github.com/feedsift/feedsift/app/content"
)

// foloEntry and foloFeed mirror the relevant fields of the Folo entries
// API response.
type foloEntry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Author      string   `json:"author"`
	PublishedAt string   `json:"publishedAt"`
	Categories  []string `json:"categories"`
}

type foloFeed struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	SiteURL string `json:"siteUrl"`
}

const tweetTitleLimit = 70

// Transform maps a raw Folo entry onto a pipeline item using the
// platform-specific field conventions of the upstream source.
func (p Platform) Transform(entry foloEntry, feed foloFeed) content.Item {
	item := content.Item{
		Title:       strings.TrimSpace(entry.Title),
		URL:         entry.URL,
		Source:      feed.Title,
		Author:      entry.Author,
		Tags:        entry.Categories,
		PublishedAt: parseEntryTime(entry.PublishedAt),
	}

	body := entry.Content
	if body == "" {
		body = entry.Description
	}
	item.Content = StripHTML(body)

	switch p {
	case PlatformTwitter:
		// Tweets have no real title: synthesize one from author and text.
		text := item.Content
		if item.Title == "" || item.Title == text {
			item.Title = tweetTitle(entry.Author, text)
		}
	case PlatformReddit:
		item.Content = stripRedditBoilerplate(item.Content)
	case PlatformGitHub:
		if item.Title == "" {
			item.Title = repoNameFromURL(entry.URL)
		}
		if item.Content == "" {
			item.Content = StripHTML(entry.Description)
		}
	case PlatformPaper:
		// Paper abstracts arrive as description with inline markup.
		if abstract := StripHTML(entry.Description); len(abstract) > len(item.Content) {
			item.Content = abstract
		}
	}

	return item
}

func tweetTitle(author, text string) string {
	runes := []rune(text)
	if len(runes) > tweetTitleLimit {
		text = string(runes[:tweetTitleLimit])
	}
	if author != "" {
		return author + ": " + text
	}
	return text
}

var redditBoilerplateMarkers = []string{"submitted by", "[link]", "[comments]"}

func stripRedditBoilerplate(text string) string {
	for _, marker := range redditBoilerplateMarkers {
		if idx := strings.Index(strings.ToLower(text), marker); idx >= 0 {
			text = text[:idx]
		}
	}
	return strings.TrimSpace(text)
}

func repoNameFromURL(url string) string {
	trimmed := strings.TrimRight(url, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2] + "/" + parts[len(parts)-1]
	}
	return trimmed
}

func parseEntryTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		// Unparseable dates pass through as nil, age filtering is fail-open.
		return nil
	}
	return &parsed
}
