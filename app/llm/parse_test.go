package llm

import (
	"testing"
)

func TestParseResults_PlainArray(t *testing.T) {
	raw := `[{"idx": 0, "score": 75, "topic": "LLM & Agents", "summary": "s", "skip": false}]`

	results, err := parseResults(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Score != 75 {
		t.Errorf("Expected score 75, got %d", results[0].Score)
	}
	if results[0].Topic != "LLM & Agents" {
		t.Errorf("Expected topic 'LLM & Agents', got %q", results[0].Topic)
	}
}

func TestParseResults_MarkdownFences(t *testing.T) {
	raw := "```json\n[{\"idx\": 1, \"score\": 40}]\n```"

	results, err := parseResults(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(results) != 1 || results[0].Index != 1 {
		t.Errorf("Expected fenced JSON parsed, got %+v", results)
	}
}

func TestParseResults_ItemsEnvelope(t *testing.T) {
	raw := `{"items": [{"idx": 0, "score": 55}, {"idx": 1, "score": 60}]}`

	results, err := parseResults(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results from envelope, got %d", len(results))
	}
}

func TestParseResults_Malformed(t *testing.T) {
	if _, err := parseResults("the items look great!"); err == nil {
		t.Error("Expected error for non-JSON response")
	}
}
