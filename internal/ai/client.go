// Package ai implements the text-generation backends used for note
// summarization.
//
// Each backend wraps one vendor API behind the core.TextGenerator capability:
// generate text from a (system, user) prompt pair, and validate the
// configured API key. Variants differ only in endpoint, authentication
// header and request/response envelope; shared logic never branches on
// vendor name. New variants are added by implementing core.TextGenerator and
// registering a case in the factory.
package ai

import (
	"fmt"

	"github.com/heomin86/obsidian-audio-generator/internal/core"
)

// Backend ids, the closed discriminator set of the factory.
const (
	BackendOpenAI    = "openai"
	BackendAnthropic = "anthropic"
	BackendGemini    = "gemini"
	BackendXAI       = "xai"
)

// DefaultTemperature is the sampling temperature used by the pipeline when
// none is configured.
const DefaultTemperature = 0.3

// maxOutputTokens caps the summary length requested from every backend.
const maxOutputTokens = 2048

// New constructs the text-generation backend selected by backendID. An
// empty modelName selects the backend's default model. Unrecognized ids fail
// with ErrUnknownBackend.
func New(backendID, apiKey, modelName string) (core.TextGenerator, error) {
	switch backendID {
	case BackendOpenAI:
		return NewOpenAI(DefaultOpenAIBaseURL, apiKey, modelName), nil
	case BackendAnthropic:
		return NewAnthropic(DefaultAnthropicBaseURL, apiKey, modelName), nil
	case BackendGemini:
		return NewGemini(DefaultGeminiBaseURL, apiKey, modelName), nil
	case BackendXAI:
		return NewXAI(DefaultXAIBaseURL, apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backendID)
	}
}

// Backends lists every registered backend id.
func Backends() []string {
	return []string{BackendOpenAI, BackendAnthropic, BackendGemini, BackendXAI}
}

// DefaultModel returns the default model name for a backend id, or "" for
// an unknown id.
func DefaultModel(backendID string) string {
	switch backendID {
	case BackendOpenAI:
		return defaultOpenAIModel
	case BackendAnthropic:
		return defaultAnthropicModel
	case BackendGemini:
		return defaultGeminiModel
	case BackendXAI:
		return defaultXAIModel
	default:
		return ""
	}
}
