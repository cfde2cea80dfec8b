package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	// DefaultAnthropicBaseURL is the production Anthropic API base.
	DefaultAnthropicBaseURL = "https://api.anthropic.com/v1"

	defaultAnthropicModel = "claude-sonnet-4-5-20250929"

	anthropicMessagesPath  = "/messages"
	anthropicVersionHeader = "anthropic-version"
	anthropicVersion       = "2023-06-01"
	anthropicKeyHeader     = "x-api-key"
)

type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system"`
	Messages    []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Anthropic generates text through the Anthropic messages API,
// authenticated with a custom key header.
type Anthropic struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	modelName  string
}

// NewAnthropic creates an Anthropic backend. An empty modelName selects the
// default model.
func NewAnthropic(baseURL, apiKey, modelName string) *Anthropic {
	if modelName == "" {
		modelName = defaultAnthropicModel
	}

	return &Anthropic{
		httpClient: newHTTPClient(),
		baseURL:    baseURL,
		apiKey:     apiKey,
		modelName:  modelName,
	}
}

// GenerateText implements core.TextGenerator.
func (c *Anthropic) GenerateText(
	ctx context.Context,
	userPrompt, systemPrompt string,
	temperature float64,
) (string, error) {
	payload := anthropicRequest{
		Model:       c.modelName,
		MaxTokens:   maxOutputTokens,
		Temperature: temperature,
		System:      systemPrompt,
		Messages: []chatMessage{
			{Role: chatRoleUser, Content: userPrompt},
		},
	}

	body, postErr := postJSON(
		ctx,
		c.httpClient,
		BackendAnthropic,
		c.baseURL+anthropicMessagesPath,
		c.authHeaders(),
		payload,
	)
	if postErr != nil {
		return "", postErr
	}

	var parsed anthropicResponse

	unmarshalErr := json.Unmarshal(body, &parsed)
	if unmarshalErr != nil {
		return "", fmt.Errorf("failed to decode anthropic response: %w", unmarshalErr)
	}

	if len(parsed.Content) == 0 || strings.TrimSpace(parsed.Content[0].Text) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyResponse, BackendAnthropic)
	}

	return parsed.Content[0].Text, nil
}

// ValidateAPIKey implements core.TextGenerator. Anthropic exposes no
// lightweight listing endpoint, so a minimal generation call stands in.
func (c *Anthropic) ValidateAPIKey(ctx context.Context) bool {
	_, err := c.GenerateText(ctx, "test", "Reply with OK", 0)

	return err == nil
}

func (c *Anthropic) authHeaders() map[string]string {
	return map[string]string{
		anthropicKeyHeader:     c.apiKey,
		anthropicVersionHeader: anthropicVersion,
	}
}
