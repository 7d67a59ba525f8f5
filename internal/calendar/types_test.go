package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/voicecal/internal/event"
)

func TestToEventSummary_Nil(t *testing.T) {
	assert.Equal(t, EventSummary{}, toEventSummary(nil))
}

func TestToAPIEvent_Minimal(t *testing.T) {
	start := time.Date(2024, 12, 7, 20, 0, 0, 0, time.FixedZone("", -5*3600))
	ev := &event.NormalizedEvent{
		Title:     "X",
		Start:     start,
		StartZone: "UTC-05:00",
		End:       start.Add(time.Hour),
		EndZone:   "UTC-05:00",
		Reminders: event.DefaultReminders(),
	}

	out := toAPIEvent(ev)
	assert.Equal(t, "X", out.Summary)
	assert.Equal(t, "2024-12-07T20:00:00-05:00", out.Start.DateTime)
	assert.Empty(t, out.Start.TimeZone)
	assert.Empty(t, out.End.TimeZone)
	assert.Nil(t, out.Attendees)
	assert.Nil(t, out.Recurrence)
	assert.Contains(t, out.Reminders.ForceSendFields, "UseDefault")
}

func TestToEventDateTime_Zones(t *testing.T) {
	ts := time.Date(2024, 12, 7, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		zone string
		want string
	}{
		{"UTC", "UTC"},
		{"Europe/Berlin", "Europe/Berlin"},
		{"UTC+02:00", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			assert.Equal(t, tt.want, toEventDateTime(ts, tt.zone).TimeZone)
		})
	}
}

func TestToEventSummary_AllDay(t *testing.T) {
	s := toEventSummary(&calendar.Event{
		Summary:   "Holiday",
		Start:     &calendar.EventDateTime{Date: "2024-12-24"},
		End:       &calendar.EventDateTime{Date: "2024-12-25"},
		Attendees: []*calendar.EventAttendee{{Email: "a@x.com"}},
	})
	assert.True(t, s.AllDay)
	assert.Equal(t, "2024-12-24", s.StartRaw)
	assert.Equal(t, 24*time.Hour, s.End.Sub(s.Start))
	assert.Equal(t, []string{"a@x.com"}, s.Attendees)
}
