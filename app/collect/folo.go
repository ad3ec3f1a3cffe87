package collect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/feedsift/feedsift/app/content"
	"github.com/feedsift/feedsift/app/profile"
)

const foloEndpoint = "https://api.follow.is/entries"

// Folo pulls entries from a Folo (follow.is) list via the authenticated
// entries API, paginating backwards with publishedAfter cursors.
type Folo struct {
	cookie     string
	userAgent  string
	listID     string
	pages      int
	pageDelay  time.Duration
	httpClient *http.Client
	endpoint   string
}

func NewFolo(cookie, userAgent string, p *profile.Profile, httpClient *http.Client) *Folo {
	return &Folo{
		cookie:     cookie,
		userAgent:  userAgent,
		listID:     p.Sources.Folo.ListID,
		pages:      p.Sources.Folo.Pages,
		pageDelay:  time.Duration(p.Sources.Folo.PageDelay) * time.Millisecond,
		httpClient: httpClient,
		endpoint:   foloEndpoint,
	}
}

func (f *Folo) Name() string {
	return "folo"
}

func (f *Folo) Collect(ctx context.Context) ([]content.Item, error) {
	if f.cookie == "" {
		return nil, fmt.Errorf("folo cookie is not configured")
	}

	var items []content.Item
	cursor := ""

	for page := 0; page < f.pages; page++ {
		if page > 0 && f.pageDelay > 0 {
			select {
			case <-time.After(f.pageDelay):
			case <-ctx.Done():
				return items, ctx.Err()
			}
		}

		entries, err := f.fetchPage(ctx, cursor)
		if err != nil {
			if len(items) > 0 {
				slog.Warn("Folo pagination aborted, returning partial results", "page", page, "error", err)
				return items, nil
			}
			return nil, err
		}
		if len(entries) == 0 {
			break
		}

		for _, wrapped := range entries {
			platform := DetectPlatform(wrapped.Feeds.Title, wrapped.Feeds.URL)
			items = append(items, platform.Transform(wrapped.Entries, wrapped.Feeds))
		}

		cursor = entries[len(entries)-1].Entries.PublishedAt
		if cursor == "" {
			break
		}
	}

	slog.Debug("Folo collection completed", "items", len(items))

	return items, nil
}

type foloRequest struct {
	ListID         string `json:"listId"`
	PublishedAfter string `json:"publishedAfter,omitempty"`
}

type foloWrappedEntry struct {
	Entries foloEntry `json:"entries"`
	Feeds   foloFeed  `json:"feeds"`
}

type foloResponse struct {
	Data []foloWrappedEntry `json:"data"`
}

func (f *Folo) fetchPage(ctx context.Context, publishedAfter string) ([]foloWrappedEntry, error) {
	body, err := json.Marshal(foloRequest{ListID: f.listID, PublishedAfter: publishedAfter})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", f.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", f.cookie)
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var parsed foloResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return parsed.Data, nil
}
