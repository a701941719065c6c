package timeutil

import (
	"testing"
	"time"
)

func TestFormatClock(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{600, "10:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-10, "00:00"},
	}
	for _, c := range cases {
		if got := FormatClock(c.in); got != c.want {
			t.Fatalf("FormatClock(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatRemainingReframesOvertime(t *testing.T) {
	if got := FormatRemaining(90, false, 0); got != "01:30" {
		t.Fatalf("expected countdown 01:30, got %q", got)
	}
	if got := FormatRemaining(0, true, 300); got != "+05:00" {
		t.Fatalf("expected overtime +05:00, got %q", got)
	}
}

func TestElapsedSecondsSince(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if got := ElapsedSecondsSince(start, start.Add(90*time.Second)); got != 90 {
		t.Fatalf("expected 90, got %d", got)
	}
	if got := ElapsedSecondsSince(start, start.Add(-time.Minute)); got != 0 {
		t.Fatalf("negative elapsed must clamp to 0, got %d", got)
	}
}
