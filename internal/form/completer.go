package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/teemow/voicecal/internal/logging"
	"github.com/teemow/voicecal/internal/task"
)

var (
	// ErrInputClosed is returned when input ends before a mandatory field
	// has been answered.
	ErrInputClosed = errors.New("input closed before all mandatory fields were answered")

	// ErrMandatoryFieldMissing is returned when the attempt limit for a
	// mandatory field is exhausted.
	ErrMandatoryFieldMissing = errors.New("mandatory field left empty")

	// ErrInterrupted is returned when the user interrupts the prompt.
	ErrInterrupted = errors.New("input interrupted")
)

const (
	introText       = "\nTo create a detailed calendar event, please provide additional information where needed.\n\n"
	answerSuffix    = "\nYour Answer: "
	mandatoryPrefix = "This field is mandatory. "
)

// Completer asks for the fields missing from a task.Details.
type Completer struct {
	reader      LineReader
	out         io.Writer
	schedule    []Field
	maxAttempts int
	logger      logging.Logger
}

// Option configures a Completer.
type Option func(*Completer)

// WithSchedule replaces the default field schedule.
func WithSchedule(fields []Field) Option {
	return func(c *Completer) {
		c.schedule = fields
	}
}

// WithMaxAttempts limits how often a mandatory field is asked.
// Zero means no limit.
func WithMaxAttempts(n int) Option {
	return func(c *Completer) {
		if n < 0 {
			n = 0
		}
		c.maxAttempts = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Completer) {
		c.logger = logger
	}
}

// NewCompleter returns a Completer reading answers from reader and writing
// the introduction to out.
func NewCompleter(reader LineReader, out io.Writer, opts ...Option) *Completer {
	c := &Completer{
		reader:   reader,
		out:      out,
		schedule: DefaultSchedule(),
		logger:   logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete fills the missing fields of details in place and returns it.
func (c *Completer) Complete(ctx context.Context, details task.Details) (task.Details, error) {
	if details == nil {
		details = task.Details{}
	}

	if _, err := io.WriteString(c.out, introText); err != nil {
		return details, err
	}

	for _, field := range c.schedule {
		if details.Has(field.Name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return details, err
		}

		answer, err := c.ask(ctx, field)
		if err != nil {
			return details, err
		}
		if answer != "" {
			details.Set(field.Name, answer)
			c.logger.Debug("field answered", logging.KeyField, field.Name)
		}
	}
	return details, nil
}

func (c *Completer) ask(ctx context.Context, field Field) (string, error) {
	answer, err := c.read(field.Prompt + answerSuffix)
	if err != nil {
		if errors.Is(err, io.EOF) && !field.Mandatory {
			return "", nil
		}
		return "", c.inputErr(field, err)
	}
	if answer != "" || !field.Mandatory {
		return answer, nil
	}

	for attempt := 1; c.maxAttempts == 0 || attempt < c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		answer, err = c.read(mandatoryPrefix + field.Prompt + answerSuffix)
		if err != nil {
			return "", c.inputErr(field, err)
		}
		if answer != "" {
			return answer, nil
		}
	}

	c.logger.Warn("mandatory field left empty", logging.KeyField, field.Name, "attempts", c.maxAttempts)
	return "", fmt.Errorf("%w: %s after %d attempts", ErrMandatoryFieldMissing, field.Name, c.maxAttempts)
}

func (c *Completer) read(prompt string) (string, error) {
	line, err := c.reader.ReadLine(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Completer) inputErr(field Field, err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s", ErrInputClosed, field.Name)
	}
	return fmt.Errorf("failed to read %s: %w", field.Name, err)
}
