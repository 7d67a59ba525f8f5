package ics

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/voicecal/internal/event"
)

var fixedNow = func() time.Time { return time.Date(2024, 12, 6, 9, 30, 0, 0, time.UTC) }

func sample(t *testing.T, zone string) *event.NormalizedEvent {
	t.Helper()
	loc := time.UTC
	if zone != "UTC" {
		var err error
		loc, err = time.LoadLocation(zone)
		require.NoError(t, err)
	}
	start := time.Date(2024, 12, 7, 15, 0, 0, 0, loc)
	return &event.NormalizedEvent{
		Title:       "Meeting with Bob",
		Description: "Budget review",
		Start:       start,
		StartZone:   zone,
		End:         start.Add(time.Hour),
		EndZone:     zone,
		Location:    "Room 4",
		Attendees:   []event.Attendee{{Email: "a@x.com"}, {Email: "c@y.com"}},
		Reminders:   event.DefaultReminders(),
		Recurrence:  []string{event.WeeklyRule},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, sample(t, "America/New_York"), Options{UID: "uid-1", Now: fixedNow})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	assert.Contains(t, out, "VERSION:2.0\r\n")
	assert.Contains(t, out, "PRODID:"+DefaultProdID+"\r\n")
	assert.Contains(t, out, "UID:uid-1\r\n")
	assert.Contains(t, out, "DTSTAMP:20241206T093000Z\r\n")
	assert.Contains(t, out, "DTSTART;TZID=America/New_York:20241207T150000\r\n")
	assert.Contains(t, out, "DTEND;TZID=America/New_York:20241207T160000\r\n")
	assert.Contains(t, out, "RRULE:FREQ=WEEKLY;COUNT=10\r\n")
	assert.Contains(t, out, "ATTENDEE:mailto:a@x.com\r\n")
	assert.Contains(t, out, "ATTENDEE:mailto:c@y.com\r\n")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VALARM"))
	assert.Contains(t, out, "TRIGGER:-PT1440M\r\n")
	assert.Contains(t, out, "TRIGGER:-PT30M\r\n")
}

func TestWrite_DecodesBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(t, "UTC"), Options{Now: fixedNow}))

	cal, err := ical.NewDecoder(&buf).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 1)
	ev := events[0]

	uid, err := ev.Props.Text(ical.PropUID)
	require.NoError(t, err)
	assert.Len(t, uid, 36)

	summary, err := ev.Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Meeting with Bob", summary)

	start, err := ev.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 12, 7, 15, 0, 0, 0, time.UTC).Equal(start))

	end, err := ev.DateTimeEnd(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, end.Sub(start))
}

func TestWrite_OffsetZoneUsesUTC(t *testing.T) {
	start := time.Date(2024, 12, 7, 15, 0, 0, 0, time.FixedZone("", -5*3600))
	ev := &event.NormalizedEvent{
		Title:     "X",
		Start:     start,
		StartZone: "UTC-05:00",
		End:       start.Add(time.Hour),
		EndZone:   "UTC-05:00",
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ev, Options{Now: fixedNow}))
	out := buf.String()

	assert.Contains(t, out, "DTSTART:20241207T200000Z\r\n")
	assert.NotContains(t, out, "RRULE")
	assert.NotContains(t, out, "VALARM")
	assert.NotContains(t, out, "ATTENDEE")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.ics")
	require.NoError(t, WriteFile(path, sample(t, "UTC"), Options{Now: fixedNow}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Meeting with Bob")
}

func TestCalendar_NilEvent(t *testing.T) {
	_, err := Calendar(nil, Options{})
	assert.Error(t, err)
}
