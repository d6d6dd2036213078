package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestWindowOverlaps(t *testing.T) {
	base := mustParse(t, "2025-01-06T10:00:00Z")

	tests := []struct {
		name     string
		a        Window
		b        Window
		expected bool
	}{
		{
			name:     "identical windows",
			a:        NewWindow(base, time.Hour),
			b:        NewWindow(base, time.Hour),
			expected: true,
		},
		{
			name:     "partial overlap",
			a:        NewWindow(base, time.Hour),
			b:        NewWindow(base.Add(30*time.Minute), time.Hour),
			expected: true,
		},
		{
			name:     "back to back do not overlap",
			a:        NewWindow(base, time.Hour),
			b:        NewWindow(base.Add(time.Hour), time.Hour),
			expected: false,
		},
		{
			name:     "disjoint",
			a:        NewWindow(base, time.Hour),
			b:        NewWindow(base.Add(3*time.Hour), time.Hour),
			expected: false,
		},
		{
			name:     "contained",
			a:        NewWindow(base, 2*time.Hour),
			b:        NewWindow(base.Add(30*time.Minute), 15*time.Minute),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.expected, tt.b.Overlaps(tt.a))
		})
	}
}

func TestBufferedWindowRequiresSeparation(t *testing.T) {
	// Booking at 10:00 for 60 minutes with a one-hour buffer must collide
	// with a 10:30 proposal, and with anything closer than an hour on
	// either side.
	existing := NewWindow(mustParse(t, "2025-01-06T10:00:00Z"), time.Hour)

	proposal := NewWindow(mustParse(t, "2025-01-06T10:30:00Z"), time.Hour)
	assert.True(t, proposal.Buffered(time.Hour).Overlaps(existing))

	tooClose := NewWindow(mustParse(t, "2025-01-06T11:30:00Z"), time.Hour)
	assert.True(t, tooClose.Buffered(time.Hour).Overlaps(existing))

	justFarEnough := NewWindow(mustParse(t, "2025-01-06T12:00:00Z"), time.Hour)
	assert.False(t, justFarEnough.Buffered(time.Hour).Overlaps(existing))

	beforeTooClose := NewWindow(mustParse(t, "2025-01-06T08:30:00Z"), time.Hour)
	assert.True(t, beforeTooClose.Buffered(time.Hour).Overlaps(existing))

	beforeFarEnough := NewWindow(mustParse(t, "2025-01-06T08:00:00Z"), time.Hour)
	assert.False(t, beforeFarEnough.Buffered(time.Hour).Overlaps(existing))
}

func TestBufferedIsSymmetric(t *testing.T) {
	w := NewWindow(mustParse(t, "2025-01-06T10:00:00Z"), 45*time.Minute)
	buffered := w.Buffered(time.Hour)

	assert.Equal(t, time.Hour, w.Start.Sub(buffered.Start))
	assert.Equal(t, time.Hour, buffered.End.Sub(w.End))
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart string
	}{
		{"monday maps to itself", "2025-01-06T10:00:00Z", "2025-01-06T00:00:00Z"},
		{"wednesday maps back to monday", "2025-01-08T23:59:00Z", "2025-01-06T00:00:00Z"},
		{"sunday belongs to preceding monday", "2025-01-12T08:00:00Z", "2025-01-06T00:00:00Z"},
		{"next monday starts a new week", "2025-01-13T00:00:00Z", "2025-01-13T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBounds(mustParse(t, tt.input))
			assert.Equal(t, mustParse(t, tt.wantStart), start)
			assert.Equal(t, start.AddDate(0, 0, 7), end)
		})
	}
}

func TestWeekBoundsContainsInput(t *testing.T) {
	for day := 0; day < 7; day++ {
		input := mustParse(t, "2025-01-06T00:00:00Z").AddDate(0, 0, day)
		start, end := WeekBounds(input)
		assert.False(t, input.Before(start), "day %d before week start", day)
		assert.True(t, input.Before(end), "day %d not before week end", day)
	}
}
