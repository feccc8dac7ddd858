package schedule

import (
	"testing"
	"time"

	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
	"github.com/preston-bernstein/campus-dining-service/internal/timeutil"
)

func TestEvaluateCountdown(t *testing.T) {
	now := at(11, 29, 30)
	ev, err := Evaluate(lunch, now, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Status != meals.StatusUpcoming {
		t.Fatalf("expected upcoming, got %s", ev.Status)
	}
	if ev.Countdown != "01:00:30" {
		t.Fatalf("expected countdown 01:00:30, got %s", ev.Countdown)
	}
}

func TestEvaluateEndedHasNoCountdown(t *testing.T) {
	now := at(15, 0, 0)
	ev, err := Evaluate(lunch, now, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Status != meals.StatusEnded || ev.Countdown != "" || ev.Remaining != 0 {
		t.Fatalf("unexpected evaluation %+v", ev)
	}
}

func TestEvaluateFutureDay(t *testing.T) {
	now := at(23, 0, 0)
	tomorrow := now.AddDate(0, 0, 1)
	ev, err := Evaluate(breakfast, tomorrow, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Status != meals.StatusUpcoming || ev.Remaining != 9*time.Hour {
		t.Fatalf("expected upcoming in 9h, got %+v", ev)
	}
}

func TestEvaluateAll(t *testing.T) {
	now := at(9, 0, 0)
	evs, err := EvaluateAll(day, now, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evs) != 2 || evs[0].Status != meals.StatusOngoing || evs[1].Status != meals.StatusUpcoming {
		t.Fatalf("unexpected evaluations %+v", evs)
	}
	if _, err := EvaluateAll([]meals.Meal{{Name: "x", StartHour: 30}}, now, now); err == nil {
		t.Fatal("expected error for invalid meal")
	}
}

func TestWindowLabel(t *testing.T) {
	got, err := WindowLabel(breakfast, timeutil.Clock12Hour)
	if err != nil || got != "8:00 AM – 10:00 AM" {
		t.Fatalf("unexpected label %q (%v)", got, err)
	}
	got, _ = WindowLabel(lunch, timeutil.ClockCompact)
	if got != "12:30 PM – 2 PM" {
		t.Fatalf("unexpected compact label %q", got)
	}
	got, _ = WindowLabel(lunch, timeutil.Clock24Hour)
	if got != "12:30 – 14:00" {
		t.Fatalf("unexpected 24h label %q", got)
	}
}
