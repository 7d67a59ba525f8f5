package event

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teemow/voicecal/internal/task"
	"github.com/teemow/voicecal/internal/timeparse"
)

// ErrMissingDateTime is returned when the details carry no date_time.
var ErrMissingDateTime = errors.New("event date and time not provided")

// TimeNormalizer resolves free-text times. *timeparse.Normalizer satisfies it.
type TimeNormalizer interface {
	Parse(text string) (time.Time, error)
}

// Builder turns completed task details into a NormalizedEvent.
type Builder struct {
	normalizer TimeNormalizer
	duration   time.Duration
}

// NewBuilder returns a Builder resolving date_time with n.
func NewBuilder(n TimeNormalizer) *Builder {
	return &Builder{
		normalizer: n,
		duration:   DefaultDuration,
	}
}

// Build assembles the event. It fails when date_time is missing or cannot
// be parsed; nothing is guessed.
func (b *Builder) Build(details task.Details) (*NormalizedEvent, error) {
	title := details.Get(task.FieldTask)
	if title == "" {
		title = DefaultTitle
	}

	when := details.Get(task.FieldDateTime)
	if when == "" {
		return nil, ErrMissingDateTime
	}
	start, err := b.normalizer.Parse(when)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event start: %w", err)
	}
	end := start.Add(b.duration)

	ev := &NormalizedEvent{
		Title:       title,
		Description: composeDescription(details),
		Start:       start,
		StartZone:   timeparse.ZoneLabel(start),
		End:         end,
		EndZone:     timeparse.ZoneLabel(end),
		Location:    details.Get(task.FieldLocation),
		Attendees:   ParseAttendees(details.Get(task.FieldParticipants)),
		Reminders:   DefaultReminders(),
	}
	if details.Get(task.FieldRecurrence) != "" {
		ev.Recurrence = []string{WeeklyRule}
	}
	return ev, nil
}

// composeDescription appends the attachments, notes and RSVP sections to
// the base description, each on its own line.
func composeDescription(details task.Details) string {
	var b strings.Builder
	b.WriteString(details.Get(task.FieldDescription))
	if v := details.Get(task.FieldAttachments); v != "" {
		b.WriteString("\nAttachments/Links: " + v)
	}
	if v := details.Get(task.FieldNotes); v != "" {
		b.WriteString("\nNotes: " + v)
	}
	if v := details.Get(task.FieldRSVP); v != "" {
		b.WriteString("\nRSVP: " + v)
	}
	return b.String()
}

// ParseAttendees splits a comma-separated participant list and keeps the
// entries that contain an "@". Names without an address are dropped.
func ParseAttendees(participants string) []Attendee {
	var attendees []Attendee
	for _, part := range strings.Split(participants, ",") {
		if !strings.Contains(part, "@") {
			continue
		}
		attendees = append(attendees, Attendee{Email: strings.TrimSpace(part)})
	}
	return attendees
}
