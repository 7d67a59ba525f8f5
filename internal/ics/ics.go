// Package ics exports a normalized event as an iCalendar (RFC 5545) file,
// so an event can be imported into any calendar without the Google API.
package ics

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/teemow/voicecal/internal/event"
	"github.com/teemow/voicecal/internal/timeparse"
)

// DefaultProdID identifies voicecal as the producer of the file.
const DefaultProdID = "-//teemow//voicecal//EN"

// Options controls encoding. Zero values pick defaults.
type Options struct {
	ProdID string
	// UID overrides the generated event UID.
	UID string
	Now func() time.Time
}

// Write encodes ev as a VCALENDAR with one VEVENT.
func Write(w io.Writer, ev *event.NormalizedEvent, opts Options) error {
	cal, err := Calendar(ev, opts)
	if err != nil {
		return err
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode iCalendar: %w", err)
	}
	return nil
}

// WriteFile writes ev to path as an .ics file.
func WriteFile(path string, ev *event.NormalizedEvent, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(f, ev, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Calendar builds the iCalendar object for ev.
func Calendar(ev *event.NormalizedEvent, opts Options) (*ical.Calendar, error) {
	if ev == nil {
		return nil, fmt.Errorf("event cannot be nil")
	}
	if opts.ProdID == "" {
		opts.ProdID = DefaultProdID
	}
	if opts.UID == "" {
		opts.UID = uuid.NewString()
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, opts.UID)
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, now().UTC())
	vevent.Props.SetText(ical.PropSummary, ev.Title)
	vevent.Props.SetDateTime(ical.PropDateTimeStart, inZone(ev.Start, ev.StartZone))
	vevent.Props.SetDateTime(ical.PropDateTimeEnd, inZone(ev.End, ev.EndZone))
	if ev.Description != "" {
		vevent.Props.SetText(ical.PropDescription, ev.Description)
	}
	if ev.Location != "" {
		vevent.Props.SetText(ical.PropLocation, ev.Location)
	}

	for _, a := range ev.Attendees {
		prop := ical.NewProp(ical.PropAttendee)
		prop.Value = "mailto:" + a.Email
		vevent.Props.Add(prop)
	}

	for _, rule := range ev.Recurrence {
		// Set directly: SetText would escape the ';' separators.
		prop := ical.NewProp(ical.PropRecurrenceRule)
		prop.Value = strings.TrimPrefix(rule, "RRULE:")
		vevent.Props.Set(prop)
	}

	for _, r := range ev.Reminders.Overrides {
		vevent.Children = append(vevent.Children, alarm(ev, r))
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, opts.ProdID)
	cal.Children = append(cal.Children, vevent.Component)
	return cal, nil
}

func alarm(ev *event.NormalizedEvent, r event.Reminder) *ical.Component {
	comp := ical.NewComponent(ical.CompAlarm)

	trigger := ical.NewProp(ical.PropTrigger)
	trigger.Value = fmt.Sprintf("-PT%dM", r.Minutes)
	comp.Props.Set(trigger)

	comp.Props.SetText(ical.PropDescription, ev.Title)
	if r.Method == event.ReminderEmail {
		comp.Props.SetText(ical.PropAction, "EMAIL")
		comp.Props.SetText(ical.PropSummary, "Reminder: "+ev.Title)
		for _, a := range ev.Attendees {
			prop := ical.NewProp(ical.PropAttendee)
			prop.Value = "mailto:" + a.Email
			comp.Props.Add(prop)
		}
	} else {
		comp.Props.SetText(ical.PropAction, "DISPLAY")
	}
	return comp
}

// inZone keeps the wall clock of named zones so the TZID parameter is
// emitted; anything else is written as UTC.
func inZone(t time.Time, zone string) time.Time {
	if zone == "UTC" || !timeparse.IsIANAZone(zone) {
		return t.UTC()
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return t.UTC()
	}
	return t.In(loc)
}
