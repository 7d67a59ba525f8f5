// Package event assembles the calendar event submitted for a completed
// set of task details.
//
// The built event always lasts one hour, always carries the same reminder
// policy (email one day before, popup 30 minutes before) and, when the
// recurrence field holds any text at all, the fixed weekly rule
// "RRULE:FREQ=WEEKLY;COUNT=10". The free-text recurrence answer is not
// interpreted.
package event
