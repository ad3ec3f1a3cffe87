package llm

import (
	"strings"
	"testing"

	"github.com/feedsift/feedsift/app/content"
	"github.com/feedsift/feedsift/app/profile"
)

func promptProfile(t *testing.T) *profile.Profile {
	t.Helper()
	p, err := profile.Load("nonexistent.yml")
	if err != nil {
		t.Fatalf("Failed to load default profile: %v", err)
	}
	return p
}

func TestBuildPrompt_ContainsItemsAndCategories(t *testing.T) {
	p := promptProfile(t)

	items := []content.Item{
		{Title: "First story", Content: "Body one", Source: "HN"},
		{Title: "Second story", Content: "Body two"},
	}

	prompt := BuildPrompt(p, items)

	if !strings.Contains(prompt, "[0] title: First story") {
		t.Error("Expected first item indexed as 0")
	}
	if !strings.Contains(prompt, "[1] title: Second story") {
		t.Error("Expected second item indexed as 1")
	}
	if !strings.Contains(prompt, "source: HN") {
		t.Error("Expected source included when present")
	}
	for _, category := range p.Categories {
		if !strings.Contains(prompt, category.Name) {
			t.Errorf("Expected category %q in prompt", category.Name)
		}
	}
	if !strings.Contains(prompt, p.Identity.Role) {
		t.Error("Expected reader role in prompt")
	}
	if !strings.Contains(prompt, "JSON array") {
		t.Error("Expected strict JSON output instruction")
	}
}

func TestBuildPrompt_TruncatesLongContent(t *testing.T) {
	p := promptProfile(t)

	items := []content.Item{
		{Title: strings.Repeat("t", 300), Content: strings.Repeat("c", 1000)},
	}

	prompt := BuildPrompt(p, items)

	if strings.Contains(prompt, strings.Repeat("t", 101)) {
		t.Error("Expected title truncated to 100 chars")
	}
	if strings.Contains(prompt, strings.Repeat("c", 401)) {
		t.Error("Expected content truncated to 400 chars")
	}
}
