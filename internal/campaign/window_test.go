package campaign

import (
	"testing"
	"time"
)

func at(t *testing.T, tz string, hour, min int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return time.Date(2025, 11, 3, hour, min, 0, 0, loc)
}

func TestWindow_SameDay(t *testing.T) {
	w, err := NewWindow("07:00", "21:00", "America/New_York")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	cases := []struct {
		hour, min int
		want      bool
	}{
		{6, 59, false},
		{7, 0, true},
		{12, 0, true},
		{20, 59, true},
		{21, 0, false},
		{23, 30, false},
	}
	for _, c := range cases {
		now := at(t, "America/New_York", c.hour, c.min)
		if got := w.Active(now); got != c.want {
			t.Fatalf("Active(%02d:%02d) = %v, want %v", c.hour, c.min, got, c.want)
		}
	}
}

func TestWindow_SpansMidnight(t *testing.T) {
	w, err := NewWindow("19:00", "04:00", "America/New_York")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	cases := []struct {
		hour, min int
		want      bool
	}{
		{18, 59, false},
		{19, 0, true},
		{23, 59, true},
		{0, 0, true},
		{3, 59, true},
		{4, 0, false},
		{12, 0, false},
	}
	for _, c := range cases {
		now := at(t, "America/New_York", c.hour, c.min)
		if got := w.Active(now); got != c.want {
			t.Fatalf("Active(%02d:%02d) = %v, want %v", c.hour, c.min, got, c.want)
		}
	}
}

func TestWindow_TimezoneAware(t *testing.T) {
	w, err := NewWindow("09:00", "17:00", "America/New_York")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// 14:00 UTC in November is 09:00 in New York.
	utc := time.Date(2025, 11, 3, 14, 0, 0, 0, time.UTC)
	if !w.Active(utc) {
		t.Fatalf("expected 14:00 UTC to fall inside a 09:00 NY window")
	}
	// 13:59 UTC is 08:59 in New York.
	if w.Active(utc.Add(-time.Minute)) {
		t.Fatalf("expected 13:59 UTC to fall outside the window")
	}
}

func TestWindow_EqualBoundsAlwaysActive(t *testing.T) {
	w, err := NewWindow("00:00", "00:00", "UTC")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !w.Active(at(t, "UTC", 3, 17)) {
		t.Fatalf("expected equal bounds to mean always active")
	}
}

func TestNewWindow_RejectsBadInput(t *testing.T) {
	if _, err := NewWindow("7am", "21:00", "UTC"); err == nil {
		t.Fatalf("expected error for bad start")
	}
	if _, err := NewWindow("07:00", "21:00", "Mars/Olympus"); err == nil {
		t.Fatalf("expected error for bad timezone")
	}
}
