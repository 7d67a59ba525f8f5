package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurrencePreview_Weekly(t *testing.T) {
	start := time.Date(2024, 12, 7, 15, 0, 0, 0, time.UTC)
	ev := &NormalizedEvent{Start: start, End: start.Add(time.Hour), Recurrence: []string{WeeklyRule}}

	all, err := RecurrencePreview(ev, 20)
	require.NoError(t, err)
	require.Len(t, all, 10)
	for i, occ := range all {
		assert.True(t, start.AddDate(0, 0, 7*i).Equal(occ), "occurrence %d = %v", i, occ)
	}

	few, err := RecurrencePreview(ev, 3)
	require.NoError(t, err)
	assert.Len(t, few, 3)
}

func TestRecurrencePreview_Single(t *testing.T) {
	start := time.Date(2024, 12, 7, 15, 0, 0, 0, time.UTC)
	ev := &NormalizedEvent{Start: start}

	got, err := RecurrencePreview(ev, 5)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{start}, got)

	got, err = RecurrencePreview(ev, 0)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecurrencePreview_InvalidRule(t *testing.T) {
	ev := &NormalizedEvent{Start: time.Now(), Recurrence: []string{"RRULE:FREQ=SOMETIMES"}}
	_, err := RecurrencePreview(ev, 3)
	assert.Error(t, err)
}
