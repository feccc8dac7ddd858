package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// MonthLayout defines the canonical month format (YYYY-MM) used to key monthly menus.
const MonthLayout = "2006-01"

// ErrInvalidTimeComponents is returned when an hour or minute is out of range.
var ErrInvalidTimeComponents = errors.New("invalid time components")

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ParseDateIn parses a YYYY-MM-DD date string as midnight in loc.
func ParseDateIn(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, value, loc)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsDate reports whether value is a canonical YYYY-MM-DD date.
func IsDate(value string) bool {
	parsed, err := ParseDate(value)
	return err == nil && FormatDate(parsed) == value
}

// MonthOf returns the YYYY-MM month containing a YYYY-MM-DD date.
func MonthOf(date string) (string, error) {
	parsed, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return parsed.Format(MonthLayout), nil
}

// ResolveLocation returns a location for a tz name, falling back to time.Local when empty or unknown.
func ResolveLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

// ValidateClock checks hour in [0,23] and minute in [0,59].
func ValidateClock(hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("%w: %d:%d", ErrInvalidTimeComponents, hour, minute)
	}
	return nil
}

// ToInstant combines the calendar day of date with hour:minute in date's location.
func ToInstant(date time.Time, hour, minute int) (time.Time, error) {
	if err := ValidateClock(hour, minute); err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, date.Location()), nil
}
