// Package worker provides a NATS worker that generates note audio on
// request.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/book-expert/logger"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/heomin86/obsidian-audio-generator/internal/core"
	"github.com/heomin86/obsidian-audio-generator/internal/pipeline"
)

const handleMessageTimeout = 5 * time.Minute

// Runner executes one note-to-audio run. *pipeline.Pipeline satisfies it;
// tests substitute fakes.
type Runner interface {
	Run(ctx context.Context, notePath string) (*pipeline.Result, error)
}

// NatsWorker listens for note audio requests on a NATS subject, runs the
// pipeline, and publishes the artifact to the object store.
type NatsWorker struct {
	natsConnection *nats.Conn
	subject        string
	runner         Runner
	vault          core.Vault
	store          core.ObjectStore
	log            *logger.Logger
}

// NewNatsWorker creates a new instance of a NATS worker.
func NewNatsWorker(
	natsConnection *nats.Conn,
	subject string,
	runner Runner,
	vault core.Vault,
	store core.ObjectStore,
	log *logger.Logger,
) *NatsWorker {
	return &NatsWorker{
		natsConnection: natsConnection,
		subject:        subject,
		runner:         runner,
		vault:          vault,
		store:          store,
		log:            log,
	}
}

// Run starts the worker and blocks until the context is cancelled.
func (w *NatsWorker) Run(ctx context.Context) error {
	sub, subscribeErr := w.natsConnection.Subscribe(w.subject, w.handleMessage)
	if subscribeErr != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", w.subject, subscribeErr)
	}

	<-ctx.Done()

	drainErr := sub.Drain()
	if drainErr != nil {
		return fmt.Errorf("failed to drain subscription: %w", drainErr)
	}

	return nil
}

func (w *NatsWorker) handleMessage(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), handleMessageTimeout)
	defer cancel()

	var event NoteAudioRequestedEvent

	unmarshalErr := json.Unmarshal(msg.Data, &event)
	if unmarshalErr != nil {
		w.log.Error("Failed to unmarshal note audio request: %v", unmarshalErr)

		return
	}

	reply, processErr := w.processRequest(ctx, &event)
	if processErr != nil {
		w.log.Error(
			"Failed to process note audio request for workflow %s: %v",
			event.Header.WorkflowID,
			processErr,
		)

		return
	}

	publishErr := w.publishReply(msg, reply)
	if publishErr != nil {
		w.log.Error(
			"Failed to publish reply for workflow %s: %v",
			event.Header.WorkflowID,
			publishErr,
		)
	}
}

// processRequest runs the pipeline for the requested note and, when audio
// was generated, publishes the artifact bytes to the object store under a
// fresh key.
func (w *NatsWorker) processRequest(
	ctx context.Context,
	event *NoteAudioRequestedEvent,
) (*NoteAudioGeneratedEvent, error) {
	result, runErr := w.runner.Run(ctx, event.NotePath)
	if runErr != nil {
		return nil, fmt.Errorf("failed to run pipeline for '%s': %w", event.NotePath, runErr)
	}

	reply := &NoteAudioGeneratedEvent{
		Header:    event.Header,
		NotePath:  event.NotePath,
		Outcome:   result.Outcome.String(),
		WordCount: result.WordCount,
		Message:   result.Message,
	}

	if result.Outcome != pipeline.OutcomeGenerated {
		return reply, nil
	}

	audioData, readErr := w.vault.ReadBinary(result.AudioPath)
	if readErr != nil {
		return nil, fmt.Errorf(
			"failed to read audio artifact '%s': %w",
			result.AudioPath,
			readErr,
		)
	}

	audioKey := uuid.NewString() + ".mp3"

	uploadErr := w.store.Upload(ctx, audioKey, audioData)
	if uploadErr != nil {
		return nil, fmt.Errorf("failed to upload audio data for key '%s': %w", audioKey, uploadErr)
	}

	reply.AudioKey = audioKey

	return reply, nil
}

func (w *NatsWorker) publishReply(msg *nats.Msg, reply *NoteAudioGeneratedEvent) error {
	replyData, marshalErr := json.Marshal(reply)
	if marshalErr != nil {
		return fmt.Errorf("failed to marshal reply event: %w", marshalErr)
	}

	respondErr := msg.Respond(replyData)
	if respondErr != nil {
		return fmt.Errorf("failed to publish reply event: %w", respondErr)
	}

	return nil
}
