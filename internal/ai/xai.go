package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	// DefaultXAIBaseURL is the production xAI API base.
	DefaultXAIBaseURL = "https://api.x.ai/v1"

	defaultXAIModel = "grok-4-1-fast-reasoning"

	xaiChatPath   = "/chat/completions"
	xaiModelsPath = "/models"
)

// XAI generates text through the xAI chat-completions API. The envelope
// matches OpenAI's with the exception that no output-token cap is sent.
type XAI struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	modelName  string
}

// NewXAI creates an xAI backend. An empty modelName selects the default
// model.
func NewXAI(baseURL, apiKey, modelName string) *XAI {
	if modelName == "" {
		modelName = defaultXAIModel
	}

	return &XAI{
		httpClient: newHTTPClient(),
		baseURL:    baseURL,
		apiKey:     apiKey,
		modelName:  modelName,
	}
}

// GenerateText implements core.TextGenerator.
func (c *XAI) GenerateText(
	ctx context.Context,
	userPrompt, systemPrompt string,
	temperature float64,
) (string, error) {
	payload := chatRequest{
		Model:       c.modelName,
		Messages:    chatMessages(userPrompt, systemPrompt),
		Temperature: temperature,
		Stream:      false,
	}

	body, postErr := postJSON(
		ctx,
		c.httpClient,
		BackendXAI,
		c.baseURL+xaiChatPath,
		c.authHeaders(),
		payload,
	)
	if postErr != nil {
		return "", postErr
	}

	var parsed chatResponse

	unmarshalErr := json.Unmarshal(body, &parsed)
	if unmarshalErr != nil {
		return "", fmt.Errorf("failed to decode xai response: %w", unmarshalErr)
	}

	content := firstChoiceContent(parsed)
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyResponse, BackendXAI)
	}

	return content, nil
}

// ValidateAPIKey implements core.TextGenerator.
func (c *XAI) ValidateAPIKey(ctx context.Context) bool {
	return getStatusOK(ctx, c.httpClient, c.baseURL+xaiModelsPath, c.authHeaders())
}

func (c *XAI) authHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + c.apiKey}
}
