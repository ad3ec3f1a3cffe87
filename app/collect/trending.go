package collect

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/feedsift/feedsift/app/content"
	"github.com/feedsift/feedsift/app/profile"
)

const trendingBaseURL = "https://github.com/trending"

// Trending scrapes the GitHub trending page, optionally filtered by
// language.
type Trending struct {
	language   string
	userAgent  string
	httpClient *http.Client
	baseURL    string
}

func NewTrending(userAgent string, p *profile.Profile, httpClient *http.Client) *Trending {
	return &Trending{
		language:   p.Sources.GitHubTrending.Language,
		userAgent:  userAgent,
		httpClient: httpClient,
		baseURL:    trendingBaseURL,
	}
}

func (t *Trending) Name() string {
	return "github_trending"
}

func (t *Trending) Collect(ctx context.Context) ([]content.Item, error) {
	url := t.baseURL
	if t.language != "" {
		url += "/" + t.language
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	items := t.parseRepos(doc)

	slog.Debug("Trending collection completed", "items", len(items))

	return items, nil
}

func (t *Trending) parseRepos(doc *goquery.Document) []content.Item {
	var items []content.Item

	doc.Find("article.Box-row").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("h2 a")
		href, ok := link.Attr("href")
		if !ok {
			return
		}

		repo := strings.TrimPrefix(strings.TrimSpace(href), "/")
		description := strings.TrimSpace(row.Find("p").First().Text())
		stars := strings.TrimSpace(row.Find(`a[href$="/stargazers"]`).First().Text())

		body := description
		if stars != "" {
			body = fmt.Sprintf("%s (%s stars)", description, stars)
		}

		items = append(items, content.Item{
			Title:   repo,
			Content: body,
			URL:     "https://github.com" + href,
			Source:  "GitHub Trending",
		})
	})

	return items
}
