package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/heomin86/obsidian-audio-generator/internal/objectstore"
	"github.com/heomin86/obsidian-audio-generator/internal/storage"
	"github.com/heomin86/obsidian-audio-generator/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the NATS worker that generates audio on request",
	Long: `serve connects to NATS, subscribes to the note audio subject, and runs
the generation pipeline for every request. Generated artifacts are also
published to the configured JetStream object store bucket.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, bootstrapErr := bootstrap()
	if bootstrapErr != nil {
		return bootstrapErr
	}

	defer func() { _ = log.Close() }()

	run, buildErr := buildPipeline(cfg, log)
	if buildErr != nil {
		return buildErr
	}

	vault, vaultErr := storage.NewDirVault(cfg.Paths.VaultDir)
	if vaultErr != nil {
		return fmt.Errorf("failed to open vault: %w", vaultErr)
	}

	natsConnection, connectErr := nats.Connect(cfg.NATS.URL)
	if connectErr != nil {
		return fmt.Errorf("failed to connect to NATS at %s: %w", cfg.NATS.URL, connectErr)
	}

	defer natsConnection.Close()

	jetstreamContext, jetstreamErr := natsConnection.JetStream()
	if jetstreamErr != nil {
		return fmt.Errorf("failed to create JetStream context: %w", jetstreamErr)
	}

	store, storeErr := objectstore.New(jetstreamContext, cfg.NATS.AudioObjectStoreBucket)
	if storeErr != nil {
		return storeErr
	}

	natsWorker := worker.NewNatsWorker(
		natsConnection,
		cfg.NATS.NoteAudioSubject,
		run,
		vault,
		store,
		log,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.System("Listening for note audio requests on subject: %s", cfg.NATS.NoteAudioSubject)

	runErr := natsWorker.Run(ctx)
	if runErr != nil {
		return fmt.Errorf("worker stopped with error: %w", runErr)
	}

	return nil
}
