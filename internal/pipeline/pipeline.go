// Package pipeline orchestrates one note-to-audio run: read, decide,
// summarize, clean, synthesize, persist.
//
// A run is a straight-line state machine over a single document. Every step
// either advances or terminates the run; terminal outcomes that are not
// errors (audio already present, cleaned text too short) are reported as
// informational results. Persistence is the last step, so a failed run never
// leaves a partially mutated document behind.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/book-expert/logger"

	"github.com/heomin86/obsidian-audio-generator/internal/ai"
	"github.com/heomin86/obsidian-audio-generator/internal/core"
	"github.com/heomin86/obsidian-audio-generator/internal/note"
	"github.com/heomin86/obsidian-audio-generator/internal/prompt"
	"github.com/heomin86/obsidian-audio-generator/internal/storage"
	"github.com/heomin86/obsidian-audio-generator/internal/text"
)

// Credential validation errors, raised before any I/O happens.
var (
	ErrMissingGeneratorKey = errors.New("text generation API key is not configured")
	ErrMissingSpeechKey    = errors.New("speech synthesis API key is not configured")
)

const (
	// minCleanedRunes is the shortest cleaned text worth synthesizing.
	minCleanedRunes = 50

	audioExtension = ".mp3"
)

// Outcome is the terminal state of a completed, non-failed run.
type Outcome int

const (
	// OutcomeGenerated means audio was synthesized and the note updated.
	OutcomeGenerated Outcome = iota
	// OutcomeSkippedExisting means the note already references an existing
	// artifact and was left untouched.
	OutcomeSkippedExisting
	// OutcomeTooShort means the cleaned text was below the synthesis
	// minimum and the run stopped without calling any backend.
	OutcomeTooShort
)

// String returns the wire identifier of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeGenerated:
		return "generated"
	case OutcomeSkippedExisting:
		return "skipped_existing"
	case OutcomeTooShort:
		return "too_short"
	default:
		return "unknown"
	}
}

// Result describes how a run ended. Message is the single human-readable
// status line for the terminal outcome.
type Result struct {
	Outcome    Outcome
	AudioPath  string
	WordCount  int
	Summarized bool
	Message    string
}

// Settings is the read-only per-run configuration. It is passed in
// explicitly so tests can drive the pipeline with fakes and fixed values.
type Settings struct {
	GeneratorAPIKey        string
	SpeechAPIKey           string
	SummarizationEnabled   bool
	SummarizationThreshold int
	// OutputDir is the vault-relative folder audio artifacts are written
	// to.
	OutputDir string
}

// Pipeline runs the note-to-audio sequence against injected collaborators.
type Pipeline struct {
	generator    core.TextGenerator
	synthesizer  core.Synthesizer
	vault        core.Vault
	preprocessor *text.Preprocessor
	settings     Settings
	log          *logger.Logger
	now          func() time.Time
}

// New creates a pipeline. The clock defaults to time.Now.
func New(
	generator core.TextGenerator,
	synthesizer core.Synthesizer,
	vault core.Vault,
	settings Settings,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		generator:    generator,
		synthesizer:  synthesizer,
		vault:        vault,
		preprocessor: text.NewPreprocessor(),
		settings:     settings,
		log:          log,
		now:          time.Now,
	}
}

// WithClock replaces the pipeline's clock. Intended for tests that assert on
// the last_modified timestamp.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now

	return p
}

// Run executes the full sequence for one note. The returned Result is nil
// exactly when the error is non-nil.
func (p *Pipeline) Run(ctx context.Context, notePath string) (*Result, error) {
	validationErr := p.validate()
	if validationErr != nil {
		return nil, validationErr
	}

	rawContent, readErr := p.vault.ReadNote(notePath)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read note %s: %w", notePath, readErr)
	}

	document := note.Parse(rawContent)

	if existing := p.existingArtifact(document); existing != "" {
		p.log.Info("Skipping %s: audio already generated at %s", notePath, existing)

		return &Result{
			Outcome:   OutcomeSkippedExisting,
			AudioPath: existing,
			Message:   fmt.Sprintf("이미 생성된 오디오가 있습니다: %s", existing),
		}, nil
	}

	speechText, summarized, summarizeErr := p.chooseSpeechText(ctx, document)
	if summarizeErr != nil {
		return nil, summarizeErr
	}

	cleaned := p.preprocessor.CleanForSpeech(speechText)
	if utf8.RuneCountInString(cleaned) < minCleanedRunes {
		p.log.Info("Stopping %s: cleaned text too short for synthesis", notePath)

		return &Result{
			Outcome:    OutcomeTooShort,
			Summarized: summarized,
			Message:    "변환할 내용이 너무 짧아 오디오를 생성하지 않았습니다.",
		}, nil
	}

	audioData, synthesizeErr := p.synthesizer.Synthesize(ctx, cleaned)
	if synthesizeErr != nil {
		return nil, fmt.Errorf("failed to synthesize audio for %s: %w", notePath, synthesizeErr)
	}

	audioPath := p.artifactPath(notePath)

	writeErr := p.vault.WriteBinary(audioPath, audioData)
	if writeErr != nil {
		return nil, fmt.Errorf("failed to write audio artifact %s: %w", audioPath, writeErr)
	}

	wordCount := text.CountWords(cleaned)

	updated := document.WithAudio(audioPath, wordCount, p.now())

	replaceErr := p.vault.ReplaceNote(notePath, updated)
	if replaceErr != nil {
		return nil, fmt.Errorf("failed to update note %s: %w", notePath, replaceErr)
	}

	p.log.Info(
		"Generated audio for %s: %s (%d words, summarized=%v)",
		notePath,
		audioPath,
		wordCount,
		summarized,
	)

	return &Result{
		Outcome:    OutcomeGenerated,
		AudioPath:  audioPath,
		WordCount:  wordCount,
		Summarized: summarized,
		Message: fmt.Sprintf(
			"오디오 생성 완료: %s (%d단어, 약 %d분 소요)",
			audioPath,
			wordCount,
			text.EstimateMinutes(wordCount),
		),
	}, nil
}

// validate fails fast on missing credentials so no I/O happens with a
// half-configured pipeline.
func (p *Pipeline) validate() error {
	if p.settings.GeneratorAPIKey == "" {
		return ErrMissingGeneratorKey
	}

	if p.settings.SpeechAPIKey == "" {
		return ErrMissingSpeechKey
	}

	return nil
}

// existingArtifact returns the audio path recorded in metadata when that
// artifact still resolves, or "" when a fresh run is needed.
func (p *Pipeline) existingArtifact(document *note.Document) string {
	audioPath := document.Metadata.StringValue(note.KeyAudioFile)
	if audioPath != "" && p.vault.Exists(audioPath) {
		return audioPath
	}

	return ""
}

// chooseSpeechText returns the text to synthesize: a generated summary when
// the decision rules call for one, the raw body otherwise.
func (p *Pipeline) chooseSpeechText(
	ctx context.Context,
	document *note.Document,
) (string, bool, error) {
	category := document.Metadata.StringValue(note.KeyType)

	if !p.shouldSummarize(document.Body, category) {
		return document.Body, false, nil
	}

	instructions := prompt.Build(document.Body, category)

	summary, generateErr := p.generator.GenerateText(
		ctx,
		instructions.User,
		instructions.System,
		ai.DefaultTemperature,
	)
	if generateErr != nil {
		return "", false, fmt.Errorf("failed to summarize note: %w", generateErr)
	}

	return summary, true, nil
}

// shouldSummarize applies the decision rule: summarization must be enabled,
// and the body must exceed the word threshold or the note's category must be
// one that always reads better summarized.
func (p *Pipeline) shouldSummarize(body, category string) bool {
	if !p.settings.SummarizationEnabled {
		return false
	}

	if text.CountWords(body) > p.settings.SummarizationThreshold {
		return true
	}

	switch category {
	case prompt.CategoryGuide,
		prompt.CategoryResource,
		prompt.CategoryYoutubeNotes,
		prompt.CategoryRetro:
		return true
	default:
		return false
	}
}

// artifactPath derives the deterministic vault-relative artifact path from
// the note's base name.
func (p *Pipeline) artifactPath(notePath string) string {
	baseName := path.Base(notePath)
	baseName = strings.TrimSuffix(baseName, path.Ext(baseName))

	return path.Join(
		p.settings.OutputDir,
		storage.SanitizeFilename(baseName)+audioExtension,
	)
}
