package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/teemow/voicecal/internal/logging"
)

// ErrMissingAPIKey is returned when an AssemblyAI transcriber is built without a key.
var ErrMissingAPIKey = errors.New("assemblyai api key is not set")

// Transcriber converts the audio at path into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// Error reports a transcript that the service finished with an error status.
type Error struct {
	Status  string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("transcription failed with status %q", e.Status)
	}
	return fmt.Sprintf("transcription failed: %s", e.Message)
}

// Config holds what the AssemblyAI transcriber needs. It is passed
// explicitly so nothing reads the environment behind the caller's back.
type Config struct {
	APIKey       string
	LanguageCode string
	// BaseURL overrides the API endpoint, mostly for tests.
	BaseURL string
}

// transcriptAPI is the subset of the SDK's transcript service we use.
type transcriptAPI interface {
	TranscribeFromReader(ctx context.Context, r io.Reader, params *aai.TranscriptOptionalParams) (aai.Transcript, error)
}

// DurationRecorder receives the wall time of each transcription.
type DurationRecorder interface {
	RecordTranscription(ctx context.Context, status string, d time.Duration)
}

// AssemblyAI transcribes audio with the AssemblyAI API.
type AssemblyAI struct {
	api      transcriptAPI
	language string
	logger   logging.Logger
	recorder DurationRecorder
}

// Option configures an AssemblyAI transcriber.
type Option func(*AssemblyAI)

// WithLogger sets the logger used for transcription progress.
func WithLogger(l logging.Logger) Option {
	return func(a *AssemblyAI) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithRecorder records transcription durations.
func WithRecorder(r DurationRecorder) Option {
	return func(a *AssemblyAI) { a.recorder = r }
}

// NewAssemblyAI creates a transcriber from cfg.
func NewAssemblyAI(cfg Config, opts ...Option) (*AssemblyAI, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	clientOpts := []aai.ClientOption{aai.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, aai.WithBaseURL(cfg.BaseURL))
	}
	client := aai.NewClientWithOptions(clientOpts...)

	return newAssemblyAI(client.Transcripts, cfg.LanguageCode, opts...), nil
}

func newAssemblyAI(api transcriptAPI, language string, opts ...Option) *AssemblyAI {
	a := &AssemblyAI{
		api:      api,
		language: language,
		logger:   logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Transcribe uploads the file at path and returns the transcript text.
func (a *AssemblyAI) Transcribe(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	var params *aai.TranscriptOptionalParams
	if a.language != "" {
		params = &aai.TranscriptOptionalParams{
			LanguageCode: aai.TranscriptLanguageCode(a.language),
		}
	}

	a.logger.Debug("uploading audio", logging.Operation("transcribe"), slog.String("path", path))

	start := time.Now()
	transcript, err := a.api.TranscribeFromReader(ctx, f, params)
	elapsed := time.Since(start)
	if err != nil {
		a.record(ctx, logging.StatusError, elapsed)
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		a.record(ctx, logging.StatusError, elapsed)
		return "", &Error{
			Status:  string(transcript.Status),
			Message: aai.ToString(transcript.Error),
		}
	}

	a.record(ctx, logging.StatusSuccess, elapsed)
	a.logger.Info("transcription finished",
		logging.Operation("transcribe"),
		slog.String("transcript_id", aai.ToString(transcript.ID)),
		slog.Duration(logging.KeyDuration, elapsed))

	return aai.ToString(transcript.Text), nil
}

func (a *AssemblyAI) record(ctx context.Context, status string, d time.Duration) {
	if a.recorder != nil {
		a.recorder.RecordTranscription(ctx, status, d)
	}
}
