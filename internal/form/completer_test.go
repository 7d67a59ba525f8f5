package form

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/voicecal/internal/logging"
	"github.com/teemow/voicecal/internal/task"
)

// scriptedReader answers prompts from a fixed list and records them.
type scriptedReader struct {
	answers []string
	prompts []string
}

func (r *scriptedReader) ReadLine(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.answers) == 0 {
		return "", io.EOF
	}
	a := r.answers[0]
	r.answers = r.answers[1:]
	return a, nil
}

func newCompleter(r LineReader, opts ...Option) (*Completer, *bytes.Buffer) {
	var out bytes.Buffer
	opts = append([]Option{WithLogger(logging.Discard())}, opts...)
	return NewCompleter(r, &out, opts...), &out
}

func TestDefaultSchedule(t *testing.T) {
	fields := DefaultSchedule()
	require.Len(t, fields, 9)

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		assert.NotEmpty(t, f.Prompt)
	}
	assert.Equal(t, []string{
		task.FieldTask, task.FieldDateTime, task.FieldLocation, task.FieldDescription,
		task.FieldParticipants, task.FieldAttachments, task.FieldRecurrence, task.FieldNotes, task.FieldRSVP,
	}, names)

	assert.True(t, fields[0].Mandatory)
	assert.True(t, fields[1].Mandatory)
	for _, f := range fields[2:] {
		assert.False(t, f.Mandatory, f.Name)
	}
}

func TestComplete_NeverOverwrites(t *testing.T) {
	r := &scriptedReader{answers: []string{"", "", "  a@x.com,bob ", "", "", "", ""}}
	c, out := newCompleter(r)

	in := task.Details{
		task.FieldTask:     "X",
		task.FieldDateTime: "2024-12-07T15:00:00-05:00",
	}
	got, err := c.Complete(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "X", got.Get(task.FieldTask))
	assert.Equal(t, "2024-12-07T15:00:00-05:00", got.Get(task.FieldDateTime))
	assert.Equal(t, "a@x.com,bob", got.Get(task.FieldParticipants))
	_, hasLocation := got[task.FieldLocation]
	assert.False(t, hasLocation, "empty optional answers stay unset")

	// seven optional prompts, none for the prefilled mandatory fields
	require.Len(t, r.prompts, 7)
	assert.True(t, strings.HasPrefix(r.prompts[0], "3. **Location**"))
	assert.True(t, strings.HasSuffix(r.prompts[0], "Your Answer: "))
	assert.Contains(t, out.String(), "To create a detailed calendar event")
}

func TestComplete_MandatoryReprompt(t *testing.T) {
	r := &scriptedReader{answers: []string{"", "   ", "Standup", "tomorrow 9am"}}
	c, _ := newCompleter(r)

	got, err := c.Complete(context.Background(), task.Details{})
	require.NoError(t, err)

	assert.Equal(t, "Standup", got.Get(task.FieldTask))
	assert.Equal(t, "tomorrow 9am", got.Get(task.FieldDateTime))
	assert.True(t, strings.HasPrefix(r.prompts[1], "This field is mandatory. 1. **Event Title**"))
	assert.True(t, strings.HasPrefix(r.prompts[2], "This field is mandatory. "))
	assert.False(t, strings.HasPrefix(r.prompts[3], "This field is mandatory. "))
}

func TestComplete_MaxAttempts(t *testing.T) {
	r := &scriptedReader{answers: []string{"", "", "", "never used"}}
	c, _ := newCompleter(r, WithMaxAttempts(3))

	_, err := c.Complete(context.Background(), task.Details{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMandatoryFieldMissing))
	assert.Len(t, r.prompts, 3)
}

func TestComplete_EOFOnMandatory(t *testing.T) {
	r := &scriptedReader{answers: []string{"Title only"}}
	c, _ := newCompleter(r)

	got, err := c.Complete(context.Background(), task.Details{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputClosed))
	assert.Equal(t, "Title only", got.Get(task.FieldTask))
}

func TestComplete_EOFOnOptionalIsFine(t *testing.T) {
	r := &scriptedReader{}
	c, _ := newCompleter(r)

	got, err := c.Complete(context.Background(), task.Details{
		task.FieldTask:     "X",
		task.FieldDateTime: "2024-12-07T15:00:00Z",
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestComplete_CancelledContext(t *testing.T) {
	r := &scriptedReader{answers: []string{"a", "b"}}
	c, _ := newCompleter(r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Complete(ctx, task.Details{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, r.prompts)
}

func TestComplete_NilDetails(t *testing.T) {
	r := &scriptedReader{answers: []string{"T", "D"}}
	c, _ := newCompleter(r, WithSchedule(DefaultSchedule()[:2]))

	got, err := c.Complete(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, task.Details{task.FieldTask: "T", task.FieldDateTime: "D"}, got)
}
