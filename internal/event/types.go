package event

import "time"

// Reminder methods understood by the calendar API.
const (
	ReminderEmail = "email"
	ReminderPopup = "popup"
)

// WeeklyRule is the recurrence attached to every repeating event.
const WeeklyRule = "RRULE:FREQ=WEEKLY;COUNT=10"

// DefaultTitle is used when the task field is absent.
const DefaultTitle = "No Title Provided"

// DefaultDuration is the length of every built event.
const DefaultDuration = time.Hour

// Attendee is an invited participant.
type Attendee struct {
	Email string `json:"email"`
}

// Reminder is one reminder override.
type Reminder struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

// Reminders is the reminder policy of an event.
type Reminders struct {
	UseDefault bool       `json:"useDefault"`
	Overrides  []Reminder `json:"overrides"`
}

// DefaultReminders returns the fixed reminder policy.
func DefaultReminders() Reminders {
	return Reminders{
		UseDefault: false,
		Overrides: []Reminder{
			{Method: ReminderEmail, Minutes: 24 * 60},
			{Method: ReminderPopup, Minutes: 30},
		},
	}
}

// NormalizedEvent is the fully resolved event handed to the calendar.
type NormalizedEvent struct {
	Title       string
	Description string
	Start       time.Time
	StartZone   string
	End         time.Time
	EndZone     string
	Location    string
	Attendees   []Attendee
	Reminders   Reminders
	// Recurrence is nil or exactly []string{WeeklyRule}.
	Recurrence []string
}

// Duration returns End - Start.
func (e *NormalizedEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Recurring reports whether the event repeats.
func (e *NormalizedEvent) Recurring() bool {
	return len(e.Recurrence) > 0
}
