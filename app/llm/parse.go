package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseResults decodes a model response into results. Models sometimes wrap
// the JSON in markdown fences or an {"items": [...]} envelope despite the
// instruction, so both are tolerated.
func parseResults(raw string) ([]Result, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var results []Result
	if err := json.Unmarshal([]byte(cleaned), &results); err == nil {
		return results, nil
	}

	var envelope struct {
		Items []Result `json:"items"`
	}
	if err := json.Unmarshal([]byte(cleaned), &envelope); err == nil && envelope.Items != nil {
		return envelope.Items, nil
	}

	return nil, fmt.Errorf("response is not a JSON result array")
}
