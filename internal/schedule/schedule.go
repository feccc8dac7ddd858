package schedule

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
	"github.com/preston-bernstein/campus-dining-service/internal/timeutil"
)

// Window is a meal's [Start, End) interval placed on a calendar day.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFor places meal on day's calendar date in day's location.
func WindowFor(meal meals.Meal, day time.Time) (Window, error) {
	start, err := timeutil.ToInstant(day, meal.StartHour, meal.StartMinute)
	if err != nil {
		return Window{}, fmt.Errorf("%s start: %w", meal.Name, err)
	}
	end, err := timeutil.ToInstant(day, meal.EndHour, meal.EndMinute)
	if err != nil {
		return Window{}, fmt.Errorf("%s end: %w", meal.Name, err)
	}
	return Window{Start: start, End: end}, nil
}

// Status classifies now against the window. Start is inclusive, end exclusive.
func (w Window) Status(now time.Time) meals.Status {
	switch {
	case now.Before(w.Start):
		return meals.StatusUpcoming
	case now.Before(w.End):
		return meals.StatusOngoing
	default:
		return meals.StatusEnded
	}
}

// Until returns the time left to the next boundary, or 0 once the window has ended.
func (w Window) Until(now time.Time) time.Duration {
	switch w.Status(now) {
	case meals.StatusUpcoming:
		return w.Start.Sub(now)
	case meals.StatusOngoing:
		return w.End.Sub(now)
	default:
		return 0
	}
}

// Classify returns the meal's status at now, using now's calendar day.
func Classify(meal meals.Meal, now time.Time) (meals.Status, error) {
	w, err := WindowFor(meal, now)
	if err != nil {
		return "", err
	}
	return w.Status(now), nil
}

// TimeToNextBoundary returns the duration to start (upcoming), to end (ongoing), or 0 (ended).
func TimeToNextBoundary(meal meals.Meal, now time.Time) (time.Duration, error) {
	w, err := WindowFor(meal, now)
	if err != nil {
		return 0, err
	}
	return w.Until(now), nil
}

// NextMeal returns the earliest meal starting strictly after now. Ties keep menu order.
// The boolean is false when every meal has started; rolling over to the next date is the caller's job.
func NextMeal(menu []meals.Meal, now time.Time) (meals.Meal, bool, error) {
	var (
		best      meals.Meal
		bestStart time.Time
		found     bool
	)
	for _, m := range menu {
		w, err := WindowFor(m, now)
		if err != nil {
			return meals.Meal{}, false, err
		}
		if !w.Start.After(now) {
			continue
		}
		if !found || w.Start.Before(bestStart) {
			best, bestStart, found = m, w.Start, true
		}
	}
	return best, found, nil
}

// CurrentMeal returns the first meal in menu order whose window contains now.
func CurrentMeal(menu []meals.Meal, now time.Time) (meals.Meal, bool, error) {
	for _, m := range menu {
		status, err := Classify(m, now)
		if err != nil {
			return meals.Meal{}, false, err
		}
		if status == meals.StatusOngoing {
			return m, true, nil
		}
	}
	return meals.Meal{}, false, nil
}
