package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heomin86/obsidian-audio-generator/internal/ai"
	"github.com/heomin86/obsidian-audio-generator/internal/config"
)

// ErrInvalidCredentials is returned when any enabled backend rejects its
// configured key.
var ErrInvalidCredentials = errors.New("one or more API keys failed validation")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the API keys of every enabled backend",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, log, bootstrapErr := bootstrap()
	if bootstrapErr != nil {
		return bootstrapErr
	}

	defer func() { _ = log.Close() }()

	allValid := true

	for backendID, backendCfg := range enabledBackends(cfg) {
		generator, newErr := ai.New(backendID, backendCfg.APIKey, backendCfg.Model)
		if newErr != nil {
			return fmt.Errorf("failed to create backend %s: %w", backendID, newErr)
		}

		valid := generator.ValidateAPIKey(cmd.Context())
		if !valid {
			allValid = false
		}

		reportValidation(cmd, backendID, valid)
	}

	speechValid := buildSynthesizer(cfg).ValidateAPIKey(cmd.Context())
	if !speechValid {
		allValid = false
	}

	reportValidation(cmd, "elevenlabs", speechValid)

	if !allValid {
		return ErrInvalidCredentials
	}

	return nil
}

// enabledBackends returns the text generation backends marked enabled in the
// configuration.
func enabledBackends(cfg *config.Config) map[string]config.BackendConfig {
	candidates := map[string]config.BackendConfig{
		ai.BackendOpenAI:    cfg.AI.OpenAI,
		ai.BackendAnthropic: cfg.AI.Anthropic,
		ai.BackendGemini:    cfg.AI.Gemini,
		ai.BackendXAI:       cfg.AI.XAI,
	}

	enabled := map[string]config.BackendConfig{}

	for backendID, backendCfg := range candidates {
		if backendCfg.Enabled {
			enabled[backendID] = backendCfg
		}
	}

	return enabled
}

func reportValidation(cmd *cobra.Command, backendID string, valid bool) {
	status := "OK"
	if !valid {
		status = "FAILED"
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", backendID, status)
}
