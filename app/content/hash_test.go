package content

import (
	"testing"
)

func TestContentHash_Idempotent(t *testing.T) {
	first := ContentHash("GPT-5 Launch", "OpenAI released...")
	second := ContentHash("GPT-5 Launch", "OpenAI released...")

	if first != second {
		t.Errorf("Expected identical hashes for identical input, got %s and %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("Expected 64-char hex digest, got %d chars", len(first))
	}
}

func TestContentHash_DifferentInput(t *testing.T) {
	a := ContentHash("Title A", "content")
	b := ContentHash("Title B", "content")

	if a == b {
		t.Error("Different titles should produce different hashes")
	}
}

func TestURLHash_TrackingParameters(t *testing.T) {
	clean := URLHash("https://x.com/a")
	tracked := URLHash("https://x.com/a?utm_source=rss")

	if clean != tracked {
		t.Errorf("Tracking parameters should not change the URL hash: %s vs %s", clean, tracked)
	}
}

func TestURLHash_CaseAndSlash(t *testing.T) {
	a := URLHash("https://Example.com/Post/")
	b := URLHash("https://example.com/post")

	if a != b {
		t.Error("URL hash should be case-insensitive and ignore trailing slashes")
	}
}

func TestURLHash_Empty(t *testing.T) {
	if URLHash("") != "" {
		t.Error("Empty URL should produce empty hash")
	}
}

func TestTitleHash_SeparatorVariations(t *testing.T) {
	a := TitleHash("Big Release - The Verge")
	b := TitleHash("Big Release | The Verge")

	if a != b {
		t.Error("Separator variations should hash identically")
	}
}

func TestTitleHash_CaseInsensitive(t *testing.T) {
	if TitleHash("Hello World") != TitleHash("hello world") {
		t.Error("Title hash should be case-insensitive")
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"http://example.com/post", "https://example.com/post"},
		{"https://example.com/post/", "https://example.com/post"},
		{"https://example.com/a?utm_source=rss", "https://example.com/a"},
		{"https://example.com/a?utm_medium=x&id=1", "https://example.com/a?id=1"},
		{"https://example.com/a?ref=home", "https://example.com/a"},
		{"https://example.com/a?source=feed", "https://example.com/a"},
		{"", ""},
	}

	for _, test := range tests {
		result := NormalizeURL(test.input)
		if result != test.expected {
			t.Errorf("NormalizeURL(%q): expected %q, got %q", test.input, test.expected, result)
		}
	}
}
