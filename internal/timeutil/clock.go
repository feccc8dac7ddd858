package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// ClockStyle selects how a time of day is rendered.
type ClockStyle string

const (
	Clock12Hour  ClockStyle = "12h"
	Clock24Hour  ClockStyle = "24h"
	ClockCompact ClockStyle = "compact"
)

// ParseClockStyle maps a config value to a ClockStyle; unknown values fall back to 12h.
func ParseClockStyle(raw string) ClockStyle {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "24h", "24":
		return Clock24Hour
	case "compact":
		return ClockCompact
	default:
		return Clock12Hour
	}
}

// Clock is a time of day with minute resolution.
type Clock struct {
	Hour   int
	Minute int
}

// Validate reports ErrInvalidTimeComponents for out-of-range fields.
func (c Clock) Validate() error {
	return ValidateClock(c.Hour, c.Minute)
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Before reports whether c is strictly earlier in the day than other.
func (c Clock) Before(other Clock) bool {
	return c.Minutes() < other.Minutes()
}

// On places the clock time on day's calendar date.
func (c Clock) On(day time.Time) (time.Time, error) {
	return ToInstant(day, c.Hour, c.Minute)
}

// Format renders the clock time in the given style.
func (c Clock) Format(style ClockStyle) (string, error) {
	return FormatClock(c.Hour, c.Minute, style)
}

// FormatClock renders "08:00" (24h), "8:00 AM" (12h) or "8 AM" (compact).
func FormatClock(hour, minute int, style ClockStyle) (string, error) {
	if err := ValidateClock(hour, minute); err != nil {
		return "", err
	}
	if style == Clock24Hour {
		return fmt.Sprintf("%02d:%02d", hour, minute), nil
	}

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	if style == ClockCompact && minute == 0 {
		return fmt.Sprintf("%d %s", hour12, suffix), nil
	}
	return fmt.Sprintf("%d:%02d %s", hour12, minute, suffix), nil
}

// FormatCountdown renders d as HH:MM:SS, truncated to the second. Negative durations render as 00:00:00;
// callers treat zero or negative as ended rather than showing it as a live countdown.
func FormatCountdown(d time.Duration) string {
	if d <= 0 {
		return "00:00:00"
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
