package schedule

import (
	"time"

	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
	"github.com/preston-bernstein/campus-dining-service/internal/timeutil"
)

// Evaluation is a meal's status at one instant, ready for display.
type Evaluation struct {
	Meal      meals.Meal
	Window    Window
	Status    meals.Status
	Remaining time.Duration
	// Countdown is empty once the meal has ended.
	Countdown string
}

// Evaluate places meal on day and classifies it at now.
func Evaluate(meal meals.Meal, day, now time.Time) (Evaluation, error) {
	w, err := WindowFor(meal, day)
	if err != nil {
		return Evaluation{}, err
	}
	ev := Evaluation{
		Meal:      meal,
		Window:    w,
		Status:    w.Status(now),
		Remaining: w.Until(now),
	}
	if ev.Status != meals.StatusEnded {
		ev.Countdown = timeutil.FormatCountdown(ev.Remaining)
	}
	return ev, nil
}

// EvaluateAll evaluates every meal of a day in menu order.
func EvaluateAll(menu []meals.Meal, day, now time.Time) ([]Evaluation, error) {
	out := make([]Evaluation, 0, len(menu))
	for _, m := range menu {
		ev, err := Evaluate(m, day, now)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// WindowLabel renders "8:00 AM – 10:00 AM" style ranges.
func WindowLabel(meal meals.Meal, style timeutil.ClockStyle) (string, error) {
	start, err := meal.Start().Format(style)
	if err != nil {
		return "", err
	}
	end, err := meal.End().Format(style)
	if err != nil {
		return "", err
	}
	return start + " – " + end, nil
}
