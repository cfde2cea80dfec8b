// Package cli wires the configuration, logger and pipeline into the
// audiogen command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/book-expert/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/heomin86/obsidian-audio-generator/internal/ai"
	"github.com/heomin86/obsidian-audio-generator/internal/config"
	"github.com/heomin86/obsidian-audio-generator/internal/core"
	"github.com/heomin86/obsidian-audio-generator/internal/elevenlabs"
	"github.com/heomin86/obsidian-audio-generator/internal/pipeline"
	"github.com/heomin86/obsidian-audio-generator/internal/storage"
)

const logFileName = "audiogen.log"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "audiogen",
	Short: "Generate listenable audio versions of markdown notes",
	Long: `audiogen reads a markdown note from a vault, optionally summarizes it
through a text generation backend, cleans the text for speech, synthesizes
audio through ElevenLabs, and writes the audio section back into the note.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath,
		"config",
		"",
		"path to a TOML configuration file (defaults to the configurator lookup)",
	)
}

// bootstrap loads the environment, configuration and final logger shared by
// every command.
func bootstrap() (*config.Config, *logger.Logger, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	bootstrapLog, bootstrapErr := logger.New(os.TempDir(), "audiogen-bootstrap.log")
	if bootstrapErr != nil {
		return nil, nil, fmt.Errorf("failed to create bootstrap logger: %w", bootstrapErr)
	}

	cfg, cfgErr := loadConfig(bootstrapLog)
	if cfgErr != nil {
		bootstrapLog.Error("Failed to load configuration: %v", cfgErr)

		return nil, nil, cfgErr
	}

	finalLog, logErr := logger.New(cfg.Paths.BaseLogsDir, logFileName)
	if logErr != nil {
		bootstrapLog.Error("Failed to create final logger: %v", logErr)

		return nil, nil, fmt.Errorf("failed to create final logger: %w", logErr)
	}

	return cfg, finalLog, nil
}

func loadConfig(log *logger.Logger) (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}

		return cfg, nil
	}

	cfg, err := config.Load(log)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

// buildGenerator constructs the active text generation backend.
func buildGenerator(cfg *config.Config) (core.TextGenerator, config.BackendConfig, error) {
	backendID, backendCfg, activeErr := cfg.ActiveBackend()
	if activeErr != nil {
		return nil, config.BackendConfig{}, activeErr
	}

	generator, newErr := ai.New(backendID, backendCfg.APIKey, backendCfg.Model)
	if newErr != nil {
		return nil, config.BackendConfig{}, fmt.Errorf(
			"failed to create text generation backend: %w",
			newErr,
		)
	}

	return generator, backendCfg, nil
}

func buildSynthesizer(cfg *config.Config) *elevenlabs.Client {
	return elevenlabs.NewClient(elevenlabs.Config{
		APIKey:       cfg.ElevenLabs.APIKey,
		VoiceID:      cfg.ElevenLabs.VoiceID,
		ModelID:      cfg.ElevenLabs.Model,
		OutputFormat: cfg.ElevenLabs.OutputFormat,
	})
}

// buildPipeline assembles the full pipeline from the loaded configuration.
func buildPipeline(cfg *config.Config, log *logger.Logger) (*pipeline.Pipeline, error) {
	generator, backendCfg, generatorErr := buildGenerator(cfg)
	if generatorErr != nil {
		return nil, generatorErr
	}

	vault, vaultErr := storage.NewDirVault(cfg.Paths.VaultDir)
	if vaultErr != nil {
		return nil, fmt.Errorf("failed to open vault: %w", vaultErr)
	}

	settings := pipeline.Settings{
		GeneratorAPIKey:        backendCfg.APIKey,
		SpeechAPIKey:           cfg.ElevenLabs.APIKey,
		SummarizationEnabled:   cfg.Summarization.Enabled,
		SummarizationThreshold: cfg.Summarization.Threshold,
		OutputDir:              cfg.Paths.OutputDir,
	}

	return pipeline.New(generator, buildSynthesizer(cfg), vault, settings, log), nil
}
