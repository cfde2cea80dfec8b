// Package core defines the interfaces shared by the audio generation pipeline.
package core

import "context"

// TextGenerator is the capability shared by every text-generation backend.
// Implementations differ only in endpoint, authentication and envelope.
type TextGenerator interface {
	// GenerateText produces text from a user prompt and a system prompt.
	// Temperature controls sampling randomness; 0.3 is the pipeline default.
	GenerateText(ctx context.Context, userPrompt, systemPrompt string, temperature float64) (string, error)

	// ValidateAPIKey reports whether the configured credentials are usable.
	// It never returns an error; any failure, including network failure,
	// reports false.
	ValidateAPIKey(ctx context.Context) bool
}

// Synthesizer converts text into audio bytes. Implementations own the
// splitting of oversized input into ordered chunks and the reassembly of the
// resulting buffers.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Vault is the storage collaborator the pipeline mutates documents through.
// Paths are vault-relative and slash-separated.
type Vault interface {
	// ReadNote returns the raw content of a note.
	ReadNote(path string) (string, error)

	// ReplaceNote overwrites a note's content as a single operation.
	ReplaceNote(path, content string) error

	// Exists reports whether a file exists at the given path.
	Exists(path string) bool

	// ReadBinary returns the bytes of a binary file.
	ReadBinary(path string) ([]byte, error)

	// WriteBinary writes a binary file, creating parent folders as needed.
	// An existing file at the path is deleted before the new one is written.
	WriteBinary(path string, data []byte) error

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(path string) error
}

// ObjectStore is a key-value blob store used by the worker to publish
// generated audio artifacts.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte) error
}
