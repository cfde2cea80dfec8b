// Package config provides the configuration structure for the audio
// generation service.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/book-expert/configurator"
	"github.com/book-expert/logger"
	"github.com/pelletier/go-toml/v2"
)

// Defaults applied to fields the configuration file leaves unset.
const (
	DefaultActiveBackend          = "openai"
	DefaultSummarizationThreshold = 2000
)

// ErrNoActiveBackend reports a configuration whose active text backend names
// no known section.
var ErrNoActiveBackend = errors.New("active backend has no configuration section")

// BackendConfig holds the settings of one text generation backend.
type BackendConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	Enabled bool   `toml:"enabled"`
}

// AIConfig selects and configures the text generation backends.
type AIConfig struct {
	Active    string        `toml:"active"`
	OpenAI    BackendConfig `toml:"openai"`
	Anthropic BackendConfig `toml:"anthropic"`
	Gemini    BackendConfig `toml:"gemini"`
	XAI       BackendConfig `toml:"xai"`
}

// ElevenLabsConfig holds the speech synthesis settings.
type ElevenLabsConfig struct {
	APIKey       string `toml:"api_key"`
	VoiceID      string `toml:"voice_id"`
	Model        string `toml:"model"`
	OutputFormat string `toml:"output_format"`
}

// SummarizationConfig controls when note bodies are summarized before
// synthesis.
type SummarizationConfig struct {
	Enabled   bool `toml:"enabled"`
	Threshold int  `toml:"threshold"`
}

// PathsConfig holds the configuration for file paths. OutputDir is relative
// to the vault root; the other paths are absolute.
type PathsConfig struct {
	VaultDir    string `toml:"vault_dir"`
	OutputDir   string `toml:"output_dir"`
	BaseLogsDir string `toml:"base_logs_dir"`
}

// NATSConfig holds the configuration for NATS.
type NATSConfig struct {
	URL                    string `toml:"url"`
	NoteAudioSubject       string `toml:"note_audio_subject"`
	AudioObjectStoreBucket string `toml:"audio_object_store_bucket"`
}

// Config is the root configuration structure.
type Config struct {
	AI            AIConfig            `toml:"ai"`
	ElevenLabs    ElevenLabsConfig    `toml:"elevenlabs"`
	Summarization SummarizationConfig `toml:"summarization"`
	Paths         PathsConfig         `toml:"paths"`
	NATS          NATSConfig          `toml:"nats"`
}

// Load loads the configuration from the environment-designated project file.
func Load(log *logger.Logger) (*Config, error) {
	var cfg Config

	err := configurator.Load(&cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from configurator: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	return &cfg, nil
}

// LoadFromFile loads the configuration from an explicit TOML file path.
func LoadFromFile(path string) (*Config, error) {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", readErr)
	}

	var cfg Config

	unmarshalErr := toml.Unmarshal(data, &cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", unmarshalErr)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	return &cfg, nil
}

// ActiveBackend returns the identifier and settings of the configured text
// generation backend.
func (c *Config) ActiveBackend() (string, BackendConfig, error) {
	switch c.AI.Active {
	case "openai":
		return c.AI.Active, c.AI.OpenAI, nil
	case "anthropic":
		return c.AI.Active, c.AI.Anthropic, nil
	case "gemini":
		return c.AI.Active, c.AI.Gemini, nil
	case "xai":
		return c.AI.Active, c.AI.XAI, nil
	default:
		return "", BackendConfig{}, fmt.Errorf(
			"%w: %q",
			ErrNoActiveBackend,
			c.AI.Active,
		)
	}
}

func (c *Config) applyDefaults() {
	if c.AI.Active == "" {
		c.AI.Active = DefaultActiveBackend
	}

	if c.Summarization.Threshold == 0 {
		c.Summarization.Threshold = DefaultSummarizationThreshold
	}

	if c.Paths.BaseLogsDir == "" {
		c.Paths.BaseLogsDir = os.TempDir()
	}
}

// applyEnvOverrides lets process environment secrets take precedence over
// file contents, so API keys never need to live in the TOML file.
func (c *Config) applyEnvOverrides() {
	overrideFromEnv(&c.AI.OpenAI.APIKey, "OPENAI_API_KEY")
	overrideFromEnv(&c.AI.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	overrideFromEnv(&c.AI.Gemini.APIKey, "GEMINI_API_KEY")
	overrideFromEnv(&c.AI.XAI.APIKey, "XAI_API_KEY")
	overrideFromEnv(&c.ElevenLabs.APIKey, "ELEVENLABS_API_KEY")
}

func overrideFromEnv(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}
