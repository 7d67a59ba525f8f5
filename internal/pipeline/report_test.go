package pipeline

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/voicecal/internal/calendar"
	"github.com/teemow/voicecal/internal/task"
)

func TestReporterDetails(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)

	err := r.Details("Extracted Task Details", task.Details{
		"task":      "meeting with Bob & Alice",
		"date_time": "tomorrow at 2 PM",
	})
	require.NoError(t, err)

	want := "\nExtracted Task Details:\n{\n  \"date_time\": \"tomorrow at 2 PM\",\n  \"task\": \"meeting with Bob & Alice\"\n}\n"
	assert.Equal(t, want, buf.String())
}

func TestReporterDetailsNil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, false).Details("Final Task Details", nil))
	assert.Equal(t, "\nFinal Task Details:\n{}\n", buf.String())
}

func TestReporterUpcoming(t *testing.T) {
	tests := []struct {
		name   string
		events []calendar.EventSummary
		want   string
	}{
		{
			name: "empty",
			want: "\nYour Upcoming Events:\nNo upcoming events found.\n",
		},
		{
			name: "timed and all-day",
			events: []calendar.EventSummary{
				{Summary: "Standup", StartRaw: "2024-06-05T09:00:00+02:00"},
				{StartRaw: "2024-06-07"},
			},
			want: "\nYour Upcoming Events:\n- Standup at 2024-06-05T09:00:00+02:00\n- No Title at 2024-06-07\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewReporter(&buf, false).Upcoming(tt.events)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestReporterOccurrences(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)

	r.Occurrences(nil)
	assert.Empty(t, buf.String())

	start := time.Date(2024, 6, 5, 14, 0, 0, 0, time.UTC)
	r.Occurrences([]time.Time{start, start.AddDate(0, 0, 7)})
	assert.Equal(t, "\nRecurring event, first occurrences:\n  - Wed, 05 Jun 2024 14:00 UTC\n  - Wed, 12 Jun 2024 14:00 UTC\n", buf.String())
}

func TestReporterLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)

	r.Info("Transcribing audio...")
	r.Success("created %s", "x")
	r.Failure("failed: %d", 3)
	r.Warning("careful")
	r.Transcript("hello")

	assert.Equal(t, "Transcribing audio...\ncreated x\nfailed: 3\ncareful\n\nTranscript:\nhello\n", buf.String())
}
