package task

import "strings"

// Field names recognized in a Details mapping.
const (
	FieldTask         = "task"
	FieldWithWhom     = "with_whom"
	FieldDateTime     = "date_time"
	FieldLocation     = "location"
	FieldDescription  = "description"
	FieldParticipants = "participants"
	FieldAttachments  = "attachments"
	FieldRecurrence   = "recurrence"
	FieldNotes        = "notes"
	FieldRSVP         = "rsvp"
)

// Details maps field names to the values collected for a calendar event.
type Details map[string]string

// Get returns the value stored for field, or "" when it is absent.
func (d Details) Get(field string) string {
	if d == nil {
		return ""
	}
	return d[field]
}

// Has reports whether field is present with a non-blank value. Values
// made only of whitespace count as absent on purpose: a spaced-out
// answer must not satisfy a mandatory field.
func (d Details) Has(field string) bool {
	return strings.TrimSpace(d.Get(field)) != ""
}

// Set stores value under field. Empty values are ignored so that a
// blank answer never masks an earlier one.
func (d Details) Set(field, value string) {
	if value == "" {
		return
	}
	d[field] = value
}

// Clone returns a shallow copy of d.
func (d Details) Clone() Details {
	out := make(Details, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// IsEmpty reports whether no field has been populated.
func (d Details) IsEmpty() bool {
	return len(d) == 0
}
