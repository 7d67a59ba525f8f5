package pipeline

import (
	"errors"
	"fmt"
)

// ErrNothingExtracted ends a run whose transcript held no recognizable request.
var ErrNothingExtracted = errors.New("failed to extract task details")

// TranscriptionError wraps a failed transcription.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("failed to transcribe audio: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// CalendarWriteError wraps a rejected event insert.
type CalendarWriteError struct {
	Err error
}

func (e *CalendarWriteError) Error() string {
	return fmt.Sprintf("error adding event to calendar: %v", e.Err)
}

func (e *CalendarWriteError) Unwrap() error { return e.Err }

// CalendarReadError wraps a failed listing of upcoming events.
type CalendarReadError struct {
	Err error
}

func (e *CalendarReadError) Error() string {
	return fmt.Sprintf("error fetching upcoming events: %v", e.Err)
}

func (e *CalendarReadError) Unwrap() error { return e.Err }
