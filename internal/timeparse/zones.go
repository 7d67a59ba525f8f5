package timeparse

import (
	"fmt"
	"strings"
	"time"

	// Embedded so zone lookups behave the same on hosts without tzdata.
	_ "time/tzdata"
)

// abbreviations maps common zone abbreviations to the IANA zone they are
// normally spoken for.
var abbreviations = map[string]string{
	"UTC":  "UTC",
	"GMT":  "UTC",
	"Z":    "UTC",
	"EST":  "America/New_York",
	"EDT":  "America/New_York",
	"ET":   "America/New_York",
	"CST":  "America/Chicago",
	"CDT":  "America/Chicago",
	"CT":   "America/Chicago",
	"MST":  "America/Denver",
	"MDT":  "America/Denver",
	"MT":   "America/Denver",
	"PST":  "America/Los_Angeles",
	"PDT":  "America/Los_Angeles",
	"PT":   "America/Los_Angeles",
	"BST":  "Europe/London",
	"CET":  "Europe/Berlin",
	"CEST": "Europe/Berlin",
	"IST":  "Asia/Kolkata",
	"JST":  "Asia/Tokyo",
	"AEST": "Australia/Sydney",
}

// LoadLocation resolves an IANA name or a known abbreviation.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}
	if iana, ok := abbreviations[strings.ToUpper(name)]; ok {
		name = iana
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", name, err)
	}
	return loc, nil
}

// splitZone strips a trailing zone token from text. The token may be an
// abbreviation ("3:00 PM EST") or an IANA name ("3pm Europe/Berlin").
func splitZone(text string) (string, *time.Location) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return text, nil
	}
	last := strings.Trim(fields[len(fields)-1], ".,()")
	rest := strings.TrimRight(strings.Join(fields[:len(fields)-1], " "), " ,")

	if iana, ok := abbreviations[strings.ToUpper(last)]; ok {
		if loc, err := time.LoadLocation(iana); err == nil {
			return rest, loc
		}
	}
	if strings.Contains(last, "/") {
		if loc, err := time.LoadLocation(last); err == nil {
			return rest, loc
		}
	}
	return text, nil
}

// ZoneLabel names the zone of t for calendar payloads: the IANA name when
// the location carries one, "UTC" for a zero offset, otherwise an offset
// label such as "UTC-05:00".
func ZoneLabel(t time.Time) string {
	name := t.Location().String()
	if name != "" && name != "Local" {
		if _, err := time.LoadLocation(name); err == nil {
			return name
		}
	}
	_, offset := t.Zone()
	if offset == 0 {
		return "UTC"
	}
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, offset/3600, (offset%3600)/60)
}

// IsIANAZone reports whether label names a loadable IANA location.
func IsIANAZone(label string) bool {
	if label == "" || strings.HasPrefix(label, "UTC+") || strings.HasPrefix(label, "UTC-") {
		return false
	}
	_, err := time.LoadLocation(label)
	return err == nil
}
