package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultGeminiBaseURL is the production Gemini API base.
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	defaultGeminiModel = "gemini-2.5-flash"

	geminiGenerateAction = "generateContent"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Gemini generates text through the Gemini generateContent API,
// authenticated with a key query parameter.
type Gemini struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	modelName  string
}

// NewGemini creates a Gemini backend. An empty modelName selects the
// default model.
func NewGemini(baseURL, apiKey, modelName string) *Gemini {
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	return &Gemini{
		httpClient: newHTTPClient(),
		baseURL:    baseURL,
		apiKey:     apiKey,
		modelName:  modelName,
	}
}

// GenerateText implements core.TextGenerator.
func (c *Gemini) GenerateText(
	ctx context.Context,
	userPrompt, systemPrompt string,
	temperature float64,
) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Role: chatRoleUser, Parts: []geminiPart{{Text: userPrompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxOutputTokens,
		},
	}

	if systemPrompt != "" {
		payload.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		}
	}

	body, postErr := postJSON(
		ctx,
		c.httpClient,
		BackendGemini,
		c.generateURL(),
		nil,
		payload,
	)
	if postErr != nil {
		return "", postErr
	}

	var parsed geminiResponse

	unmarshalErr := json.Unmarshal(body, &parsed)
	if unmarshalErr != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", unmarshalErr)
	}

	generated := joinCandidateParts(parsed)
	if generated == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyResponse, BackendGemini)
	}

	return generated, nil
}

// ValidateAPIKey implements core.TextGenerator.
func (c *Gemini) ValidateAPIKey(ctx context.Context) bool {
	listURL := fmt.Sprintf("%s/models?key=%s", c.baseURL, url.QueryEscape(c.apiKey))

	return getStatusOK(ctx, c.httpClient, listURL, nil)
}

func (c *Gemini) generateURL() string {
	return fmt.Sprintf(
		"%s/models/%s:%s?key=%s",
		c.baseURL,
		c.modelName,
		geminiGenerateAction,
		url.QueryEscape(c.apiKey),
	)
}

// joinCandidateParts concatenates the text parts of the first candidate and
// trims surrounding whitespace.
func joinCandidateParts(parsed geminiResponse) string {
	if len(parsed.Candidates) == 0 {
		return ""
	}

	var builder strings.Builder

	for _, part := range parsed.Candidates[0].Content.Parts {
		builder.WriteString(part.Text)
	}

	return strings.TrimSpace(builder.String())
}
