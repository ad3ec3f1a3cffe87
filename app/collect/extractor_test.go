package collect

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/feedsift/feedsift/app/content"
)

func articlePage() string {
	paragraph := "<p>" + strings.Repeat("This is a long and substantive paragraph about the subject of the article. ", 5) + "</p>"
	return fmt.Sprintf(`<html><head><title>Deep Dive</title></head><body>
<article>
<h1>Deep Dive</h1>
%s
%s
%s
</article>
</body></html>`, paragraph, paragraph, paragraph)
}

func TestExtractor_EnrichesShortItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, articlePage())
	}))
	defer server.Close()

	extractor := NewExtractor("test-agent", server.Client())

	items := []content.Item{
		{Title: "Deep Dive", Content: "short teaser", URL: server.URL + "/post"},
	}

	result := extractor.Enrich(context.Background(), items, 200, 5)
	if len(result) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(result))
	}
	if len(result[0].Content) <= len("short teaser") {
		t.Errorf("Expected enriched content, still have %q", result[0].Content)
	}
}

func TestExtractor_SkipsLongItems(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	extractor := NewExtractor("test-agent", server.Client())

	items := []content.Item{
		{Title: "Already full", Content: strings.Repeat("x", 500), URL: server.URL + "/post"},
	}

	extractor.Enrich(context.Background(), items, 200, 5)
	if calls != 0 {
		t.Errorf("Expected no fetches for long items, got %d", calls)
	}
}

func TestExtractor_RespectsMaxFetches(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, articlePage())
	}))
	defer server.Close()

	extractor := NewExtractor("test-agent", server.Client())

	items := make([]content.Item, 5)
	for i := range items {
		items[i] = content.Item{Title: "t", Content: "short", URL: fmt.Sprintf("%s/post/%d", server.URL, i)}
	}

	extractor.Enrich(context.Background(), items, 200, 2)
	if calls != 2 {
		t.Errorf("Expected max 2 fetches, got %d", calls)
	}
}

func TestExtractor_FailureLeavesItemUnchanged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	extractor := NewExtractor("test-agent", server.Client())

	items := []content.Item{
		{Title: "Gone", Content: "short teaser", URL: server.URL + "/missing"},
	}

	result := extractor.Enrich(context.Background(), items, 200, 5)
	if result[0].Content != "short teaser" {
		t.Errorf("Expected content unchanged on failure, got %q", result[0].Content)
	}
}
