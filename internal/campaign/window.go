package campaign

import (
	"fmt"
	"time"
)

// Window is the daily interval during which the campaign may place calls.
// It is a pure function of the passed time, which keeps it testable with a
// fixed clock.
type Window struct {
	start int // minutes since midnight, inclusive
	end   int // minutes since midnight, exclusive
	loc   *time.Location
}

// NewWindow parses "HH:MM" bounds in the named timezone. A start after the
// end means the window spans midnight (e.g. 19:00 to 04:00). Equal bounds
// mean always active.
func NewWindow(start, end, tz string) (Window, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Window{}, fmt.Errorf("campaign: load timezone %q: %w", tz, err)
	}
	s, err := parseClock(start)
	if err != nil {
		return Window{}, fmt.Errorf("campaign: window start: %w", err)
	}
	e, err := parseClock(end)
	if err != nil {
		return Window{}, fmt.Errorf("campaign: window end: %w", err)
	}
	return Window{start: s, end: e, loc: loc}, nil
}

// Active reports whether now falls inside the window.
func (w Window) Active(now time.Time) bool {
	t := now.In(w.loc)
	m := t.Hour()*60 + t.Minute()

	switch {
	case w.start == w.end:
		return true
	case w.start < w.end:
		return m >= w.start && m < w.end
	default:
		// Spans midnight.
		return m >= w.start || m < w.end
	}
}

// Location returns the window's timezone.
func (w Window) Location() *time.Location {
	return w.loc
}

func parseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("want HH:MM, got %q", v)
	}
	return t.Hour()*60 + t.Minute(), nil
}
