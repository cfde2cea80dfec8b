package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <note-path>",
	Short: "Generate audio for one vault-relative note path",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, log, bootstrapErr := bootstrap()
	if bootstrapErr != nil {
		return bootstrapErr
	}

	defer func() { _ = log.Close() }()

	run, buildErr := buildPipeline(cfg, log)
	if buildErr != nil {
		return buildErr
	}

	notePath := args[0]

	result, runErr := run.Run(cmd.Context(), notePath)
	if runErr != nil {
		log.Error("Run failed for %s: %v", notePath, runErr)

		return fmt.Errorf("failed to generate audio for %s: %w", notePath, runErr)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Message)

	return nil
}
