package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List the ElevenLabs voices available to the configured account",
	RunE:  runVoices,
}

func init() {
	rootCmd.AddCommand(voicesCmd)
}

func runVoices(cmd *cobra.Command, _ []string) error {
	cfg, log, bootstrapErr := bootstrap()
	if bootstrapErr != nil {
		return bootstrapErr
	}

	defer func() { _ = log.Close() }()

	voices, voicesErr := buildSynthesizer(cfg).Voices(cmd.Context())
	if voicesErr != nil {
		return fmt.Errorf("failed to list voices: %w", voicesErr)
	}

	for _, voice := range voices {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", voice.VoiceID, voice.Name)
	}

	return nil
}
