package collect

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	readability "codeberg.org/readeck/go-readability"

	"github.com/feedsift/feedsift/app/content"
)

// Extractor fetches full article text for items whose collected content is
// too thin to classify well. Failures leave the item unchanged.
type Extractor struct {
	httpClient *http.Client
	userAgent  string
}

func NewExtractor(userAgent string, httpClient *http.Client) *Extractor {
	return &Extractor{httpClient: httpClient, userAgent: userAgent}
}

// Enrich replaces the content of short items with readability-extracted
// article text, fetching at most maxFetches pages per run.
func (e *Extractor) Enrich(ctx context.Context, items []content.Item, minLength, maxFetches int) []content.Item {
	fetched := 0

	for i := range items {
		if fetched >= maxFetches {
			break
		}
		if len([]rune(items[i].Content)) >= minLength || items[i].URL == "" {
			continue
		}

		fetched++
		text, err := e.extract(ctx, items[i].URL)
		if err != nil {
			slog.Debug("Content extraction failed", "url", items[i].URL, "error", err)
			continue
		}

		if len([]rune(text)) > len([]rune(items[i].Content)) {
			items[i].Content = text
		}
	}

	if fetched > 0 {
		slog.Info("Content extraction completed", "fetched", fetched)
	}

	return items
}

func (e *Extractor) extract(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(strings.ToLower(contentType), "text/html") {
		return "", fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no content extracted from HTML data")
	}

	return spaceRe.ReplaceAllString(text, " "), nil
}
