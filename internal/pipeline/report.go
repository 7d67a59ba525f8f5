package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/teemow/voicecal/internal/calendar"
	"github.com/teemow/voicecal/internal/task"
)

const untitled = "No Title"

// Reporter writes the user-facing progress of a run.
type Reporter struct {
	out     io.Writer
	ok      *color.Color
	fail    *color.Color
	warn    *color.Color
	heading *color.Color
}

// NewReporter creates a Reporter writing to out. With colored false all
// output is plain; otherwise fatih/color decides based on the terminal.
func NewReporter(out io.Writer, colored bool) *Reporter {
	r := &Reporter{
		out:     out,
		ok:      color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		heading: color.New(color.Bold),
	}
	if !colored {
		for _, c := range []*color.Color{r.ok, r.fail, r.warn, r.heading} {
			c.DisableColor()
		}
	}
	return r
}

// Info prints a plain line.
func (r *Reporter) Info(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Success prints a green line.
func (r *Reporter) Success(format string, args ...any) {
	r.ok.Fprintf(r.out, format+"\n", args...)
}

// Failure prints a red line.
func (r *Reporter) Failure(format string, args ...any) {
	r.fail.Fprintf(r.out, format+"\n", args...)
}

// Warning prints a yellow line.
func (r *Reporter) Warning(format string, args ...any) {
	r.warn.Fprintf(r.out, format+"\n", args...)
}

// Transcript prints the transcribed text.
func (r *Reporter) Transcript(text string) {
	r.heading.Fprintln(r.out, "\nTranscript:")
	fmt.Fprintln(r.out, text)
}

// Details prints d as indented JSON under title.
func (r *Reporter) Details(title string, d task.Details) error {
	r.heading.Fprintf(r.out, "\n%s:\n", title)

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if d == nil {
		d = task.Details{}
	}
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to print task details: %w", err)
	}
	return nil
}

// Occurrences prints the first dates of a recurring event.
func (r *Reporter) Occurrences(occurrences []time.Time) {
	if len(occurrences) == 0 {
		return
	}
	r.heading.Fprintln(r.out, "\nRecurring event, first occurrences:")
	for _, t := range occurrences {
		fmt.Fprintf(r.out, "  - %s\n", t.Format("Mon, 02 Jan 2006 15:04 MST"))
	}
}

// Upcoming prints the upcoming events list.
func (r *Reporter) Upcoming(events []calendar.EventSummary) {
	r.heading.Fprintln(r.out, "\nYour Upcoming Events:")
	if len(events) == 0 {
		fmt.Fprintln(r.out, "No upcoming events found.")
		return
	}
	for _, ev := range events {
		summary := ev.Summary
		if summary == "" {
			summary = untitled
		}
		fmt.Fprintf(r.out, "- %s at %s\n", summary, ev.StartRaw)
	}
}
