package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/voicecal/internal/event"
	"github.com/teemow/voicecal/internal/timeparse"
)

// EventSummary represents a simplified calendar event for listing
type EventSummary struct {
	ID       string
	Summary  string
	Location string
	HTMLLink string
	Status   string
	Start    time.Time
	End      time.Time
	// StartRaw is the start as the API reported it: a dateTime, or a
	// date for all-day events.
	StartRaw  string
	AllDay    bool
	Attendees []string
}

// toEventSummary converts a Google Calendar event to an EventSummary
func toEventSummary(ev *calendar.Event) EventSummary {
	if ev == nil {
		return EventSummary{}
	}

	summary := EventSummary{
		ID:       ev.Id,
		Summary:  ev.Summary,
		Location: ev.Location,
		HTMLLink: ev.HtmlLink,
		Status:   ev.Status,
	}

	if ev.Start != nil {
		if ev.Start.DateTime != "" {
			summary.StartRaw = ev.Start.DateTime
			if t, err := time.Parse(time.RFC3339, ev.Start.DateTime); err == nil {
				summary.Start = t
			}
		} else if ev.Start.Date != "" {
			summary.StartRaw = ev.Start.Date
			summary.AllDay = true
			if t, err := time.Parse("2006-01-02", ev.Start.Date); err == nil {
				summary.Start = t
			}
		}
	}

	if ev.End != nil {
		if ev.End.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, ev.End.DateTime); err == nil {
				summary.End = t
			}
		} else if ev.End.Date != "" {
			if t, err := time.Parse("2006-01-02", ev.End.Date); err == nil {
				summary.End = t
			}
		}
	}

	for _, att := range ev.Attendees {
		summary.Attendees = append(summary.Attendees, att.Email)
	}

	return summary
}

// toAPIEvent maps a normalized event onto the Calendar API resource.
func toAPIEvent(ev *event.NormalizedEvent) *calendar.Event {
	out := &calendar.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       toEventDateTime(ev.Start, ev.StartZone),
		End:         toEventDateTime(ev.End, ev.EndZone),
		Reminders: &calendar.EventReminders{
			UseDefault:      ev.Reminders.UseDefault,
			ForceSendFields: []string{"UseDefault"},
		},
	}

	for _, a := range ev.Attendees {
		out.Attendees = append(out.Attendees, &calendar.EventAttendee{Email: a.Email})
	}

	for _, r := range ev.Reminders.Overrides {
		out.Reminders.Overrides = append(out.Reminders.Overrides, &calendar.EventReminder{
			Method:  r.Method,
			Minutes: int64(r.Minutes),
		})
	}

	if len(ev.Recurrence) > 0 {
		out.Recurrence = append([]string(nil), ev.Recurrence...)
	}

	return out
}

// toEventDateTime sends the offset-bearing timestamp and, when the zone is
// a real IANA name, the zone too so recurring events follow DST.
func toEventDateTime(t time.Time, zone string) *calendar.EventDateTime {
	dt := &calendar.EventDateTime{DateTime: t.Format(time.RFC3339)}
	if timeparse.IsIANAZone(zone) {
		dt.TimeZone = zone
	}
	return dt
}
