// Package dining turns resolved menus into the views the HTTP and CLI adapters render.
package dining

import (
	"context"
	"fmt"
	"time"

	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
	"github.com/preston-bernstein/campus-dining-service/internal/menu"
	"github.com/preston-bernstein/campus-dining-service/internal/schedule"
	"github.com/preston-bernstein/campus-dining-service/internal/timeutil"
)

// MaxRolloverDays bounds how far Next looks past today for an upcoming meal.
const MaxRolloverDays = 7

const daysPerWeek = 7

// Menus is the resolver surface the service depends on.
type Menus interface {
	DailyMenu(date string) meals.DailyMenu
	Catalog() (meals.Catalog, meals.Tier)
	Refresh(ctx context.Context, date string) menu.RefreshResult
	Status() menu.Status
}

// Service coordinates menu lookups and status evaluation.
type Service struct {
	menus Menus
	style timeutil.ClockStyle
	loc   *time.Location
}

// NewService constructs a Service. A nil loc means time.Local.
func NewService(menus Menus, style timeutil.ClockStyle, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	if style == "" {
		style = timeutil.Clock12Hour
	}
	return &Service{menus: menus, style: style, loc: loc}
}

// Location returns the zone meal windows are evaluated in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Today returns now's date in the service location.
func (s *Service) Today(now time.Time) string {
	return timeutil.FormatDate(now.In(s.loc))
}

// Day returns the resolved menu for date.
func (s *Service) Day(date string) meals.DailyMenu {
	return s.menus.DailyMenu(date)
}

// Board evaluates every meal of date at now. An empty date means today.
func (s *Service) Board(date string, now time.Time) (Board, error) {
	now = now.In(s.loc)
	if date == "" {
		date = s.Today(now)
	}
	day, err := timeutil.ParseDateIn(date, s.loc)
	if err != nil {
		return Board{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	dm := s.menus.DailyMenu(date)
	evs, err := schedule.EvaluateAll(dm.Meals, day, now)
	if err != nil {
		return Board{}, err
	}

	board := Board{
		Date:  dm.Date,
		Tier:  dm.Tier,
		Now:   now,
		Meals: make([]MealView, 0, len(evs)),
	}
	for _, ev := range evs {
		view, err := s.view(ev)
		if err != nil {
			return Board{}, err
		}
		board.Meals = append(board.Meals, view)
		if board.Current == nil && ev.Status == meals.StatusOngoing {
			current := view
			board.Current = &current
		}
	}
	if next, ok, err := s.Next(now); err != nil {
		return Board{}, err
	} else if ok {
		board.Next = &next
	}
	return board, nil
}

// Next finds the next meal to start after now, rolling over to later dates when today is done.
func (s *Service) Next(now time.Time) (Upcoming, bool, error) {
	now = now.In(s.loc)
	today := s.Today(now)

	dm := s.menus.DailyMenu(today)
	meal, ok, err := schedule.NextMeal(dm.Meals, now)
	if err != nil {
		return Upcoming{}, false, err
	}
	if ok {
		return s.upcoming(dm, meal, now, now)
	}

	base, _ := timeutil.ParseDateIn(today, s.loc)
	for offset := 1; offset <= MaxRolloverDays; offset++ {
		day := base.AddDate(0, 0, offset)
		dm := s.menus.DailyMenu(timeutil.FormatDate(day))
		if len(dm.Meals) == 0 {
			continue
		}
		return s.upcoming(dm, firstMeal(dm.Meals), day, now)
	}
	return Upcoming{}, false, nil
}

// Weeks groups the dates of the current monthly view into consecutive sections of seven.
func (s *Service) Weeks() []Week {
	catalog, _ := s.menus.Catalog()
	dates := catalog.Dates()

	weeks := make([]Week, 0, (len(dates)+daysPerWeek-1)/daysPerWeek)
	for i := 0; i < len(dates); i += daysPerWeek {
		end := i + daysPerWeek
		if end > len(dates) {
			end = len(dates)
		}
		week := Week{
			Label: fmt.Sprintf("Week %d", len(weeks)+1),
			Days:  make([]meals.DailyMenu, 0, end-i),
		}
		for _, d := range dates[i:end] {
			week.Days = append(week.Days, s.menus.DailyMenu(d))
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// Refresh triggers a refresh of the month containing date.
func (s *Service) Refresh(ctx context.Context, date string) menu.RefreshResult {
	return s.menus.Refresh(ctx, date)
}

// Status reports which tier is being served.
func (s *Service) Status() menu.Status {
	return s.menus.Status()
}

func (s *Service) upcoming(dm meals.DailyMenu, meal meals.Meal, day, now time.Time) (Upcoming, bool, error) {
	ev, err := schedule.Evaluate(meal, day, now)
	if err != nil {
		return Upcoming{}, false, err
	}
	view, err := s.view(ev)
	if err != nil {
		return Upcoming{}, false, err
	}
	return Upcoming{
		Date:     dm.Date,
		Tier:     dm.Tier,
		Meal:     view,
		StartsAt: ev.Window.Start,
	}, true, nil
}

func (s *Service) view(ev schedule.Evaluation) (MealView, error) {
	label, err := schedule.WindowLabel(ev.Meal, s.style)
	if err != nil {
		return MealView{}, err
	}
	start, _ := ev.Meal.Start().Format(s.style)
	end, _ := ev.Meal.End().Format(s.style)
	return MealView{
		Name:             ev.Meal.Name,
		Window:           label,
		Start:            start,
		End:              end,
		Status:           ev.Status,
		Countdown:        ev.Countdown,
		RemainingSeconds: int64(ev.Remaining / time.Second),
		Items:            append([]string{}, ev.Meal.Items...),
		Highlights:       append([]string(nil), ev.Meal.Highlights...),
	}, nil
}

// firstMeal is the earliest-starting meal; ties keep menu order.
func firstMeal(list []meals.Meal) meals.Meal {
	best := list[0]
	for _, m := range list[1:] {
		if m.Start().Before(best.Start()) {
			best = m
		}
	}
	return best
}
