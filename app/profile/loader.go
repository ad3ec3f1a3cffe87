package profile

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a profile YAML file, applies defaults, and validates it.
// A missing file is not an error: the default profile is returned so the
// pipeline can run out of the box.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Profile file not found, using defaults", "path", path)
			p := &Profile{}
			setDefaults(p)
			return p, nil
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	setDefaults(&p)

	if err := validate(&p); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	slog.Debug("Profile loaded", "path", path,
		"high_keywords", len(p.Keywords.High),
		"medium_keywords", len(p.Keywords.Medium),
		"categories", len(p.Categories))

	return &p, nil
}

func setDefaults(p *Profile) {
	if p.Identity.Role == "" {
		p.Identity.Role = "AI engineer"
	}
	if len(p.Keywords.High) == 0 {
		p.Keywords.High = []string{
			"llm", "large language model", "gpt", "claude", "gemini",
			"transformer", "neural network", "deep learning", "machine learning",
			"embedding", "fine-tuning", "rag", "agent",
		}
	}
	if len(p.Keywords.Medium) == 0 {
		p.Keywords.Medium = []string{
			"api", "sdk", "framework", "library", "open source",
			"python", "rust", "typescript",
			"openai", "anthropic", "huggingface",
			"nlp", "computer vision", "speech",
		}
	}
	if len(p.Categories) == 0 {
		p.Categories = []Category{
			{Name: "AI Research & Papers", Keywords: []string{"paper", "arxiv", "benchmark", "sota"}},
			{Name: "LLM & Agents", Keywords: []string{"llm", "gpt", "claude", "gemini", "agent", "prompt"}},
			{Name: "Tools & Libraries", Keywords: []string{"tool", "library", "framework", "sdk", "github"}},
			{Name: "Efficiency & Productivity", Keywords: []string{"productivity", "workflow", "automation"}},
			{Name: "Industry News", Keywords: []string{"funding", "launch", "release", "acquisition"}},
		}
	}
	if len(p.Filters.SpamKeywords) == 0 {
		p.Filters.SpamKeywords = []string{
			"sponsored", "advertisement", "promo", "discount",
			"limited offer", "buy now", "click here",
		}
	}
	if p.Cleaning.MinContentLength == 0 {
		p.Cleaning.MinContentLength = 50
	}
	if p.Cleaning.MaxContentLength == 0 {
		p.Cleaning.MaxContentLength = 2000
	}
	if p.Cleaning.MaxAgeDays == 0 {
		p.Cleaning.MaxAgeDays = 7
	}
	if p.Dedup.RetentionDays == 0 {
		p.Dedup.RetentionDays = 7
	}
	if p.Dedup.URLWindowHours == 0 {
		p.Dedup.URLWindowHours = 24
	}
	if p.Scoring.MustRead == 0 {
		p.Scoring.MustRead = 80
	}
	if p.Scoring.Recommended == 0 {
		p.Scoring.Recommended = 50
	}
	if p.Scoring.FYI == 0 {
		p.Scoring.FYI = 30
	}
	if p.Limits.MustRead == 0 {
		p.Limits.MustRead = 5
	}
	if p.Limits.Recommended == 0 {
		p.Limits.Recommended = 15
	}
	if p.Limits.FYI == 0 {
		p.Limits.FYI = 10
	}
	if p.LLM.BatchSize == 0 {
		p.LLM.BatchSize = 20
	}
	if p.LLM.BorderlineCap == 0 {
		p.LLM.BorderlineCap = 20
	}
	if p.LLM.BatchDelayMs == 0 {
		p.LLM.BatchDelayMs = 500
	}
	if len(p.LLM.Providers) == 0 {
		p.LLM.Providers = []string{"gemini", "openai"}
	}
	if p.LLM.GeminiModel == "" {
		p.LLM.GeminiModel = "gemini-2.0-flash"
	}
	if p.LLM.OpenAIModel == "" {
		p.LLM.OpenAIModel = "gpt-4o-mini"
	}
	if p.Extraction.MinContentLength == 0 {
		p.Extraction.MinContentLength = 200
	}
	if p.Extraction.MaxFetches == 0 {
		p.Extraction.MaxFetches = 5
	}
	if p.Sources.Folo.Pages == 0 {
		p.Sources.Folo.Pages = 5
	}
	if p.Sources.Folo.PageDelay == 0 {
		p.Sources.Folo.PageDelay = 1000
	}
}

func validate(p *Profile) error {
	if p.Scoring.MustRead <= p.Scoring.Recommended {
		return fmt.Errorf("must_read threshold (%d) must be above recommended threshold (%d)",
			p.Scoring.MustRead, p.Scoring.Recommended)
	}
	if p.Scoring.Recommended <= p.Scoring.FYI {
		return fmt.Errorf("recommended threshold (%d) must be above fyi threshold (%d)",
			p.Scoring.Recommended, p.Scoring.FYI)
	}

	nonNegativeFields := map[string]int{
		"min content length":     p.Cleaning.MinContentLength,
		"max content length":     p.Cleaning.MaxContentLength,
		"max age days":           p.Cleaning.MaxAgeDays,
		"retention days":         p.Dedup.RetentionDays,
		"url window hours":       p.Dedup.URLWindowHours,
		"must_read limit":        p.Limits.MustRead,
		"recommended limit":      p.Limits.Recommended,
		"fyi limit":              p.Limits.FYI,
		"llm batch size":         p.LLM.BatchSize,
		"llm borderline cap":     p.LLM.BorderlineCap,
		"llm batch delay":        p.LLM.BatchDelayMs,
		"extraction max fetches": p.Extraction.MaxFetches,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	for i, category := range p.Categories {
		if category.Name == "" {
			return fmt.Errorf("category at index %d has no name", i)
		}
		if len(category.Keywords) == 0 {
			return fmt.Errorf("category %q must have at least one keyword", category.Name)
		}
	}

	validProviders := map[string]bool{"gemini": true, "openai": true}
	for _, provider := range p.LLM.Providers {
		if !validProviders[provider] {
			return fmt.Errorf("unknown LLM provider: %s", provider)
		}
	}

	return nil
}
