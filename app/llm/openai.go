package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/feedsift/feedsift/app/content"
	"github.com/feedsift/feedsift/app/profile"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

// OpenAI classifies batches via the chat completions REST API.
type OpenAI struct {
	apiKey     string
	model      string
	profile    *profile.Profile
	httpClient *http.Client
	endpoint   string
}

func NewOpenAI(apiKey string, p *profile.Profile, httpClient *http.Client) *OpenAI {
	return &OpenAI{
		apiKey:     apiKey,
		model:      p.LLM.OpenAIModel,
		profile:    p,
		httpClient: httpClient,
		endpoint:   openAIEndpoint,
	}
}

func (o *OpenAI) Name() string {
	return "openai"
}

func (o *OpenAI) ClassifyBatch(ctx context.Context, items []content.Item) ([]Result, error) {
	if o.apiKey == "" {
		return nil, fmt.Errorf("openai API key is not configured")
	}

	prompt := BuildPrompt(o.profile, items)

	response, err := withRetry(ctx, o.Name(), func() (string, error) {
		return o.complete(ctx, prompt)
	})
	if err != nil {
		return nil, err
	}

	return parseResults(response)
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	payload := openAIRequest{
		Model: o.model,
		Messages: []openAIMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.3,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var parsed openAIResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("response contains no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
