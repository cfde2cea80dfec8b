package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	// DefaultOpenAIBaseURL is the production OpenAI API base.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"

	defaultOpenAIModel = "gpt-4o-mini"

	openAIChatPath   = "/chat/completions"
	openAIModelsPath = "/models"
)

// OpenAI generates text through the OpenAI chat-completions API,
// authenticated with a bearer token.
type OpenAI struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	modelName  string
}

// NewOpenAI creates an OpenAI backend. An empty modelName selects the
// default model.
func NewOpenAI(baseURL, apiKey, modelName string) *OpenAI {
	if modelName == "" {
		modelName = defaultOpenAIModel
	}

	return &OpenAI{
		httpClient: newHTTPClient(),
		baseURL:    baseURL,
		apiKey:     apiKey,
		modelName:  modelName,
	}
}

// GenerateText implements core.TextGenerator.
func (c *OpenAI) GenerateText(
	ctx context.Context,
	userPrompt, systemPrompt string,
	temperature float64,
) (string, error) {
	payload := chatRequest{
		Model:       c.modelName,
		Messages:    chatMessages(userPrompt, systemPrompt),
		Temperature: temperature,
		MaxTokens:   maxOutputTokens,
		Stream:      false,
	}

	body, postErr := postJSON(
		ctx,
		c.httpClient,
		BackendOpenAI,
		c.baseURL+openAIChatPath,
		c.authHeaders(),
		payload,
	)
	if postErr != nil {
		return "", postErr
	}

	var parsed chatResponse

	unmarshalErr := json.Unmarshal(body, &parsed)
	if unmarshalErr != nil {
		return "", fmt.Errorf("failed to decode openai response: %w", unmarshalErr)
	}

	content := firstChoiceContent(parsed)
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyResponse, BackendOpenAI)
	}

	return content, nil
}

// ValidateAPIKey implements core.TextGenerator. It checks the models
// endpoint and never returns an error.
func (c *OpenAI) ValidateAPIKey(ctx context.Context) bool {
	return getStatusOK(ctx, c.httpClient, c.baseURL+openAIModelsPath, c.authHeaders())
}

func (c *OpenAI) authHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + c.apiKey}
}
