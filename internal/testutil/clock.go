package testutil

import (
	"time"

	"github.com/preston-bernstein/campus-dining-service/internal/timeutil"
)

// NowAt returns a clock function fixed at the provided time.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// At returns hour:minute on date (YYYY-MM-DD) in loc; it panics on a bad date.
func At(date string, hour, minute int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	day, err := timeutil.ParseDateIn(date, loc)
	if err != nil {
		panic(err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
}
