package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// RecurrencePreview returns up to n occurrence start times of ev. A
// non-recurring event yields only its own start.
func RecurrencePreview(ev *NormalizedEvent, n int) ([]time.Time, error) {
	if n <= 0 {
		return nil, nil
	}
	if !ev.Recurring() {
		return []time.Time{ev.Start}, nil
	}

	var out []time.Time
	for _, line := range ev.Recurrence {
		r, err := rrule.StrToRRule(strings.TrimPrefix(line, "RRULE:"))
		if err != nil {
			return nil, fmt.Errorf("invalid recurrence rule %q: %w", line, err)
		}
		r.DTStart(ev.Start)

		iter := r.Iterator()
		for len(out) < n {
			t, ok := iter()
			if !ok {
				break
			}
			out = append(out, t)
		}
	}
	return out, nil
}
