package meals

import (
	"sort"

	"github.com/preston-bernstein/campus-dining-service/internal/timeutil"
)

// Status is the lifecycle state of a meal relative to a point in time.
type Status string

const (
	StatusUpcoming Status = "UPCOMING"
	StatusOngoing  Status = "ONGOING"
	StatusEnded    Status = "ENDED"
)

// Tier identifies where a menu came from.
type Tier string

const (
	TierBundled Tier = "bundled"
	TierCached  Tier = "cached"
	TierRemote  Tier = "remote"
)

// Meal is one scheduled dining window on a given day. The window is [start, end) and never wraps midnight.
type Meal struct {
	Name        string   `json:"name"`
	StartHour   int      `json:"startHour"`
	StartMinute int      `json:"startMinute"`
	EndHour     int      `json:"endHour"`
	EndMinute   int      `json:"endMinute"`
	Items       []string `json:"items"`
	Highlights  []string `json:"highlights,omitempty"`
}

// Start returns the opening time of day.
func (m Meal) Start() timeutil.Clock {
	return timeutil.Clock{Hour: m.StartHour, Minute: m.StartMinute}
}

// End returns the closing time of day (exclusive).
func (m Meal) End() timeutil.Clock {
	return timeutil.Clock{Hour: m.EndHour, Minute: m.EndMinute}
}

// Clone returns a deep copy so callers cannot mutate catalog data.
func (m Meal) Clone() Meal {
	out := m
	out.Items = append([]string{}, m.Items...)
	if m.Highlights != nil {
		out.Highlights = append([]string{}, m.Highlights...)
	}
	return out
}

// DailyMenu is the resolved list of meals for one date.
type DailyMenu struct {
	Date  string `json:"date"`
	Tier  Tier   `json:"tier"`
	Meals []Meal `json:"meals"`
}

// NewDailyMenu builds a DailyMenu, copying meals and guaranteeing a non-nil slice.
func NewDailyMenu(date string, tier Tier, meals []Meal) DailyMenu {
	return DailyMenu{
		Date:  date,
		Tier:  tier,
		Meals: cloneMeals(meals),
	}
}

// Catalog is a monthly menu snapshot keyed by YYYY-MM-DD.
type Catalog map[string][]Meal

// Day returns the meals for a date and whether the catalog covers it.
func (c Catalog) Day(date string) ([]Meal, bool) {
	if c == nil {
		return nil, false
	}
	day, ok := c[date]
	return day, ok
}

// Dates returns the covered dates in ascending order.
func (c Catalog) Dates() []string {
	dates := make([]string, 0, len(c))
	for d := range c {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	for date, day := range c {
		out[date] = cloneMeals(day)
	}
	return out
}

func cloneMeals(in []Meal) []Meal {
	out := make([]Meal, 0, len(in))
	for _, m := range in {
		out = append(out, m.Clone())
	}
	return out
}
