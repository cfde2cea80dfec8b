package ai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heomin86/obsidian-audio-generator/internal/ai"
	"github.com/heomin86/obsidian-audio-generator/internal/core"
)

func TestNew_KnownBackends(t *testing.T) {
	t.Parallel()

	for _, backendID := range ai.Backends() {
		generator, err := ai.New(backendID, "test-key", "")
		require.NoError(t, err, backendID)
		require.NotNil(t, generator, backendID)
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	t.Parallel()

	generator, err := ai.New("cohere", "test-key", "")
	require.ErrorIs(t, err, ai.ErrUnknownBackend)
	require.Nil(t, generator)
}

func TestDefaultModel(t *testing.T) {
	t.Parallel()

	for _, backendID := range ai.Backends() {
		require.NotEmpty(t, ai.DefaultModel(backendID), backendID)
	}

	require.Empty(t, ai.DefaultModel("cohere"))
}

// chatCompletionsHandler answers like an OpenAI-compatible backend.
func chatCompletionsHandler(t *testing.T, reply string) http.HandlerFunc {
	t.Helper()

	return func(responseWriter http.ResponseWriter, request *http.Request) {
		require.Equal(t, http.MethodPost, request.Method)
		require.Equal(t, "/chat/completions", request.URL.Path)

		var payload map[string]any

		require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
		require.NotEmpty(t, payload["model"])

		response := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": reply}},
			},
		}
		responseWriter.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(responseWriter).Encode(response))
	}
}

func TestOpenAI_GenerateText_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(chatCompletionsHandler(t, "요약된 내용입니다."))
	defer server.Close()

	client := ai.NewOpenAI(server.URL, "test-key", "gpt-4o-mini")

	generated, err := client.GenerateText(
		context.Background(),
		"user prompt",
		"system prompt",
		ai.DefaultTemperature,
	)
	require.NoError(t, err)
	require.Equal(t, "요약된 내용입니다.", generated)
}

func TestOpenAI_GenerateText_Unauthorized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(responseWriter http.ResponseWriter, _ *http.Request) {
			http.Error(responseWriter, `{"error":"invalid api key"}`, http.StatusUnauthorized)
		},
	))
	defer server.Close()

	client := ai.NewOpenAI(server.URL, "bad-key", "")

	_, err := client.GenerateText(context.Background(), "user", "system", 0.3)
	require.Error(t, err)

	var serviceErr *core.ExternalServiceError

	require.ErrorAs(t, err, &serviceErr)
	require.Equal(t, http.StatusUnauthorized, serviceErr.StatusCode)
	require.Contains(t, serviceErr.Body, "invalid api key")
}

func TestOpenAI_GenerateText_EmptyResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(responseWriter http.ResponseWriter, _ *http.Request) {
			responseWriter.Header().Set("Content-Type", "application/json")
			_, _ = responseWriter.Write([]byte(`{"choices":[]}`))
		},
	))
	defer server.Close()

	client := ai.NewOpenAI(server.URL, "test-key", "")

	_, err := client.GenerateText(context.Background(), "user", "system", 0.3)
	require.ErrorIs(t, err, ai.ErrEmptyResponse)
}

func TestOpenAI_ValidateAPIKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(responseWriter http.ResponseWriter, request *http.Request) {
			require.Equal(t, "/models", request.URL.Path)

			if request.Header.Get("Authorization") == "Bearer good-key" {
				responseWriter.WriteHeader(http.StatusOK)

				return
			}

			responseWriter.WriteHeader(http.StatusUnauthorized)
		},
	))
	defer server.Close()

	require.True(t, ai.NewOpenAI(server.URL, "good-key", "").ValidateAPIKey(context.Background()))
	require.False(t, ai.NewOpenAI(server.URL, "bad-key", "").ValidateAPIKey(context.Background()))
}

// TestValidateAPIKey_NetworkFailure verifies that an unreachable backend
// reports false instead of an error.
func TestValidateAPIKey_NetworkFailure(t *testing.T) {
	t.Parallel()

	deadURL := "http://127.0.0.1:1"

	clients := []core.TextGenerator{
		ai.NewOpenAI(deadURL, "key", ""),
		ai.NewAnthropic(deadURL, "key", ""),
		ai.NewGemini(deadURL, "key", ""),
		ai.NewXAI(deadURL, "key", ""),
	}

	for _, client := range clients {
		require.False(t, client.ValidateAPIKey(context.Background()))
	}
}

func TestXAI_GenerateText_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(responseWriter http.ResponseWriter, request *http.Request) {
			require.Equal(t, "/chat/completions", request.URL.Path)
			require.Equal(t, "Bearer xai-key", request.Header.Get("Authorization"))

			var payload map[string]any

			require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
			require.Equal(t, false, payload["stream"])

			responseWriter.Header().Set("Content-Type", "application/json")
			_, _ = responseWriter.Write(
				[]byte(`{"choices":[{"message":{"content":"grok says hi"}}]}`),
			)
		},
	))
	defer server.Close()

	client := ai.NewXAI(server.URL, "xai-key", "")

	generated, err := client.GenerateText(context.Background(), "user", "system", 0.3)
	require.NoError(t, err)
	require.Equal(t, "grok says hi", generated)
}

func TestAnthropic_GenerateText_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(responseWriter http.ResponseWriter, request *http.Request) {
			require.Equal(t, "/messages", request.URL.Path)
			require.Equal(t, "anthropic-key", request.Header.Get("x-api-key"))
			require.Equal(t, "2023-06-01", request.Header.Get("anthropic-version"))

			var payload map[string]any

			require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
			require.Equal(t, "system prompt", payload["system"])

			responseWriter.Header().Set("Content-Type", "application/json")
			_, _ = responseWriter.Write([]byte(`{"content":[{"text":"claude says hi"}]}`))
		},
	))
	defer server.Close()

	client := ai.NewAnthropic(server.URL, "anthropic-key", "")

	generated, err := client.GenerateText(
		context.Background(),
		"user prompt",
		"system prompt",
		0.3,
	)
	require.NoError(t, err)
	require.Equal(t, "claude says hi", generated)
}

func TestAnthropic_GenerateText_EmptyContent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(responseWriter http.ResponseWriter, _ *http.Request) {
			responseWriter.Header().Set("Content-Type", "application/json")
			_, _ = responseWriter.Write([]byte(`{"content":[]}`))
		},
	))
	defer server.Close()

	client := ai.NewAnthropic(server.URL, "anthropic-key", "")

	_, err := client.GenerateText(context.Background(), "user", "system", 0.3)
	require.ErrorIs(t, err, ai.ErrEmptyResponse)
}

func TestGemini_GenerateText_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(responseWriter http.ResponseWriter, request *http.Request) {
			require.Equal(
				t,
				"/models/gemini-2.5-flash:generateContent",
				request.URL.Path,
			)
			require.Equal(t, "gemini-key", request.URL.Query().Get("key"))

			var payload map[string]any

			require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))
			require.Contains(t, payload, "systemInstruction")

			responseWriter.Header().Set("Content-Type", "application/json")

			response := `{"candidates":[{"content":{"parts":` +
				`[{"text":"gemini "},{"text":"says hi"}]}}]}`
			_, _ = responseWriter.Write([]byte(response))
		},
	))
	defer server.Close()

	client := ai.NewGemini(server.URL, "gemini-key", "")

	generated, err := client.GenerateText(context.Background(), "user", "system", 0.3)
	require.NoError(t, err)
	require.Equal(t, "gemini says hi", generated)
}

func TestGemini_GenerateText_ServiceError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(
		func(responseWriter http.ResponseWriter, _ *http.Request) {
			http.Error(responseWriter, "quota exceeded", http.StatusTooManyRequests)
		},
	))
	defer server.Close()

	client := ai.NewGemini(server.URL, "gemini-key", "")

	_, err := client.GenerateText(context.Background(), "user", "system", 0.3)

	var serviceErr *core.ExternalServiceError

	require.True(t, errors.As(err, &serviceErr))
	require.Equal(t, http.StatusTooManyRequests, serviceErr.StatusCode)
}
