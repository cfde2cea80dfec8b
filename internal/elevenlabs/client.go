// Package elevenlabs converts text to speech through the ElevenLabs API.
//
// Input longer than one request's character budget is split into ordered
// chunks that are synthesized strictly sequentially and concatenated in
// original order. Sequential execution is load-bearing twice over: the audio
// must reassemble into coherent speech, and the vendor rate-limits per
// account. The MP3 container permits frame-level concatenation, so no
// separator bytes are inserted between chunk buffers.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/heomin86/obsidian-audio-generator/internal/core"
)

const (
	// DefaultBaseURL is the production ElevenLabs API base.
	DefaultBaseURL = "https://api.elevenlabs.io/v1"

	// Defaults applied when the configuration leaves a field empty.
	defaultVoiceID      = "4JJwo477JUAx3HV0T7n7"
	defaultModelID      = "eleven_turbo_v2_5"
	defaultOutputFormat = "mp3_44100_192"

	// maxChunkChars is the per-request character budget; longer input is
	// chunked.
	maxChunkChars = 4000

	backendID      = "elevenlabs"
	keyHeader      = "xi-api-key"
	requestTimeout = 120 * time.Second
)

// Default voice settings, matching the vendor's recommended narration
// profile.
const (
	defaultStability       = 0.5
	defaultSimilarityBoost = 0.75
)

// VoiceSettings tunes the synthesized voice.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// DefaultVoiceSettings returns the narration profile used when none is
// configured.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		Stability:       defaultStability,
		SimilarityBoost: defaultSimilarityBoost,
		Style:           0,
		UseSpeakerBoost: true,
	}
}

// Config holds the connection settings for one client.
type Config struct {
	BaseURL      string
	APIKey       string
	VoiceID      string
	ModelID      string
	OutputFormat string
	// VoiceSettings overrides the default narration profile when set.
	VoiceSettings *VoiceSettings
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// Client is the ElevenLabs speech synthesizer.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	voiceID       string
	modelID       string
	outputFormat  string
	voiceSettings VoiceSettings
}

// NewClient creates a client, filling unset configuration fields with
// defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.VoiceID == "" {
		cfg.VoiceID = defaultVoiceID
	}

	if cfg.ModelID == "" {
		cfg.ModelID = defaultModelID
	}

	if cfg.OutputFormat == "" {
		cfg.OutputFormat = defaultOutputFormat
	}

	voiceSettings := DefaultVoiceSettings()
	if cfg.VoiceSettings != nil {
		voiceSettings = *cfg.VoiceSettings
	}

	return &Client{
		httpClient:    &http.Client{Timeout: requestTimeout},
		baseURL:       cfg.BaseURL,
		apiKey:        cfg.APIKey,
		voiceID:       cfg.VoiceID,
		modelID:       cfg.ModelID,
		outputFormat:  cfg.OutputFormat,
		voiceSettings: voiceSettings,
	}
}

// Synthesize implements core.Synthesizer. Text within the per-request budget
// is synthesized in one call; longer text is chunked, synthesized
// sequentially in original order, and concatenated. Failure of any chunk
// aborts the whole operation; partial audio is never returned.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if utf8.RuneCountInString(text) <= maxChunkChars {
		return c.synthesizeChunk(ctx, text)
	}

	chunks := SplitIntoChunks(text, maxChunkChars)

	var combined bytes.Buffer

	for chunkIndex, chunk := range chunks {
		audioData, chunkErr := c.synthesizeChunk(ctx, chunk)
		if chunkErr != nil {
			return nil, fmt.Errorf(
				"chunk %d/%d failed: %w",
				chunkIndex+1,
				len(chunks),
				chunkErr,
			)
		}

		combined.Write(audioData)
	}

	return combined.Bytes(), nil
}

// ValidateAPIKey reports whether the configured key is usable. It never
// returns an error; any failure reports false.
func (c *Client) ValidateAPIKey(ctx context.Context) bool {
	req, reqErr := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/user",
		http.NoBody,
	)
	if reqErr != nil {
		return false
	}

	req.Header.Set(keyHeader, c.apiKey)

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return false
	}

	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}

// Voice is one entry of the vendor's voice catalogue.
type Voice struct {
	VoiceID string `json:"voice_id"`
	Name    string `json:"name"`
}

// Voices lists the voices available to the configured account.
func (c *Client) Voices(ctx context.Context) ([]Voice, error) {
	req, reqErr := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/voices",
		http.NoBody,
	)
	if reqErr != nil {
		return nil, fmt.Errorf("failed to create voices request: %w", reqErr)
	}

	req.Header.Set(keyHeader, c.apiKey)

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("failed to fetch voices: %w", doErr)
	}

	defer func() { _ = resp.Body.Close() }()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read voices response: %w", readErr)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &core.ExternalServiceError{
			Backend:    backendID,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var parsed struct {
		Voices []Voice `json:"voices"`
	}

	unmarshalErr := json.Unmarshal(body, &parsed)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to decode voices response: %w", unmarshalErr)
	}

	return parsed.Voices, nil
}

// synthesizeChunk issues one synthesis call and returns the raw audio bytes.
func (c *Client) synthesizeChunk(ctx context.Context, text string) ([]byte, error) {
	payload := synthesisRequest{
		Text:          text,
		ModelID:       c.modelID,
		VoiceSettings: c.voiceSettings,
	}

	requestBody, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return nil, fmt.Errorf("failed to marshal synthesis request: %w", marshalErr)
	}

	url := fmt.Sprintf(
		"%s/text-to-speech/%s?output_format=%s",
		c.baseURL,
		c.voiceID,
		c.outputFormat,
	)

	req, reqErr := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewReader(requestBody),
	)
	if reqErr != nil {
		return nil, fmt.Errorf("failed to create synthesis request: %w", reqErr)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(keyHeader, c.apiKey)

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("failed to reach speech backend: %w", doErr)
	}

	defer func() { _ = resp.Body.Close() }()

	audioData, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", readErr)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &core.ExternalServiceError{
			Backend:    backendID,
			StatusCode: resp.StatusCode,
			Body:       string(audioData),
		}
	}

	return audioData, nil
}
