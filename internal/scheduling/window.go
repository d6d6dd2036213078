package scheduling

import "time"

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds the candidate window for an appointment starting at
// start and running for the given duration.
func NewWindow(start time.Time, duration time.Duration) Window {
	return Window{Start: start, End: start.Add(duration)}
}

// Buffered expands the window by the separation buffer on both sides.
// The buffer is symmetric: a full buffer of idle time is required before
// and after the candidate slot.
func (w Window) Buffered(buffer time.Duration) Window {
	return Window{Start: w.Start.Add(-buffer), End: w.End.Add(buffer)}
}

// Overlaps reports whether two half-open windows intersect.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// WeekBounds returns the half-open calendar week [start, end) containing t.
// Weeks start on Monday, matching PostgreSQL's date_trunc('week', ...).
func WeekBounds(t time.Time) (time.Time, time.Time) {
	days := int(t.Weekday()) - int(time.Monday)
	if days < 0 {
		days += 7
	}
	year, month, day := t.AddDate(0, 0, -days).Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 7)
}
