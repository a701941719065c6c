// Package timeutil holds the pure display-formatting helpers for durations
// and timestamps.
package timeutil

import (
	"fmt"
	"time"
)

// FormatClock renders whole seconds as H:MM:SS, or MM:SS under an hour.
// Negative inputs are treated as zero.
func FormatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatRemaining renders a countdown, reframed as time over the limit once
// the run is overdue.
func FormatRemaining(remainingSeconds int, overtime bool, overtimeSeconds int) string {
	if overtime {
		return "+" + FormatClock(overtimeSeconds)
	}
	return FormatClock(remainingSeconds)
}

// ElapsedSecondsSince is the whole seconds between two instants, never
// negative.
func ElapsedSecondsSince(start, now time.Time) int {
	d := int(now.Sub(start).Seconds())
	if d < 0 {
		return 0
	}
	return d
}

// FormatTimestamp renders an absolute instant for display.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
