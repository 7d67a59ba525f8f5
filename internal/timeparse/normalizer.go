package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// absoluteLayouts are tried before dateparse so the common spoken forms
// are handled without guessing.
var absoluteLayouts = []string{
	"January 2 2006 3:04 PM",
	"2 January 2006 3:04 PM",
	"2 January 2006 3 PM",
	"2 January 2006 15:04",
	"2 Jan 2006 3:04 PM",
	"2 Jan 2006 3 PM",
	"2 Jan 2006 15:04",
	"3:04 PM January 2 2006",
	"3 PM January 2 2006",
	"January 2 2006 3:04PM",
	"January 2 2006 3 PM",
	"January 2 2006 3PM",
	"January 2 2006 15:04",
	"Jan 2 2006 3:04 PM",
	"Jan 2 2006 3:04PM",
	"Jan 2 2006 3PM",
	"Jan 2 2006 15:04",
	"2006-01-02 15:04",
	"2006-01-02 3:04 PM",
	"2006-01-02T15:04",
	"3:04 PM 2006-01-02",
	"3 PM 2006-01-02",
	"15:04 2006-01-02",
	"2006-01-02",
	// Without a year; the year is taken from the clock.
	"January 2 3:04 PM",
	"January 2 3 PM",
	"January 2 15:04",
	"Jan 2 3:04 PM",
	"Jan 2 3 PM",
	"Jan 2 15:04",
	"2 January 3:04 PM",
	"2 January 3 PM",
	"2 January 15:04",
}

// filler words may sit between the parts of a relative expression
// without being matched by any when rule.
var filler = map[string]bool{"at": true, "on": true, "around": true}

var (
	ordinalSuffix = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
	atWord        = regexp.MustCompile(`(?i)\s+(?:at|on)\s+`)
	bareHour      = regexp.MustCompile(`(?i)\bat\s+(\d{1,2})\b`)
	meridiemAhead = regexp.MustCompile(`(?i)^\s*(?::|[ap]\.|[ap]m\b)`)
	meridiem      = regexp.MustCompile(`(?i)\b([ap])\.m\.`)
)

// Normalizer resolves free text to absolute instants.
type Normalizer struct {
	loc  *time.Location
	now  func() time.Time
	when *when.Parser
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithClock overrides the reference time used for relative expressions.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

// New returns a Normalizer resolving zone-less expressions in loc.
// A nil loc means UTC.
func New(loc *time.Location, opts ...Option) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	n := &Normalizer{
		loc:  loc,
		now:  time.Now,
		when: w,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Location returns the default location of the normalizer.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Parse resolves text to a timezone-aware instant.
func (n *Normalizer) Parse(text string) (time.Time, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return time.Time{}, &TimeParseError{Input: text}
	}

	// Machine formats first; they carry their own offset.
	if t, err := time.ParseInLocation(time.RFC3339Nano, raw, n.loc); err == nil {
		return t, nil
	}

	body, loc := splitZone(raw)
	if loc == nil {
		loc = n.loc
	}
	body = expandBareHour(body)
	now := n.now().In(loc)

	cleaned := clean(body)
	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, cleaned, loc); err == nil {
			return withYear(t, now), nil
		}
	}

	if t, err := dateparse.ParseIn(cleaned, loc); err == nil {
		return withYear(t.In(loc), now), nil
	}

	// The span when understood must be the whole expression.
	spoken := meridiem.ReplaceAllString(body, "${1}m")
	if r, err := n.when.Parse(spoken, now); err == nil && r != nil && covers(spoken, r.Index, r.Text) {
		return r.Time.In(loc), nil
	}

	return time.Time{}, &TimeParseError{Input: text}
}

// withYear fills in the clock's year for layouts that carry none.
func withYear(t, now time.Time) time.Time {
	if t.Year() != 0 {
		return t
	}
	return time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// expandBareHour rewrites "at 5" as "at 5:00" so the hour is read on a
// 24-hour clock instead of being ignored. Hours followed by a meridiem
// or minutes are left alone.
func expandBareHour(s string) string {
	var b strings.Builder
	last := 0
	for _, m := range bareHour.FindAllStringSubmatchIndex(s, -1) {
		if meridiemAhead.MatchString(s[m[1]:]) {
			continue
		}
		hour, err := strconv.Atoi(s[m[2]:m[3]])
		if err != nil || hour > 23 {
			continue
		}
		b.WriteString(s[last:m[3]])
		b.WriteString(":00")
		last = m[3]
	}
	b.WriteString(s[last:])
	return b.String()
}

// covers reports whether the matched span at index leaves nothing but
// punctuation and filler words in s.
func covers(s string, index int, matched string) bool {
	if index < 0 || index+len(matched) > len(s) {
		return false
	}
	rest := s[:index] + " " + s[index+len(matched):]
	words := strings.FieldsFunc(rest, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if !filler[strings.ToLower(w)] {
			return false
		}
	}
	return true
}

// FormatISO renders t in the ISO-8601 form stored in task details.
func FormatISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

// clean normalizes punctuation so absolute layouts have a chance to match:
// "December 7th, 2024, at 3:00 p.m." becomes "December 7 2024 3:00 PM".
func clean(s string) string {
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	s = atWord.ReplaceAllString(s, " ")
	s = meridiem.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[:1]) + "M"
	})
	s = strings.ReplaceAll(s, ",", " ")
	s = strings.Join(strings.Fields(s), " ")
	s = upperMeridiem(s)
	return s
}

var lowerMeridiem = regexp.MustCompile(`(?i)(\d)\s*(am|pm)\b`)

func upperMeridiem(s string) string {
	return lowerMeridiem.ReplaceAllStringFunc(s, func(m string) string {
		sub := lowerMeridiem.FindStringSubmatch(m)
		return sub[1] + " " + strings.ToUpper(sub[2])
	})
}
