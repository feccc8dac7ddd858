package dining

import (
	"errors"
	"time"

	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
)

// ErrInvalidDate is returned for dates that are not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date")

// MealView is one meal as displayed: labels, status and countdown at a given instant.
type MealView struct {
	Name             string       `json:"name"`
	Window           string       `json:"window"`
	Start            string       `json:"start"`
	End              string       `json:"end"`
	Status           meals.Status `json:"status"`
	Countdown        string       `json:"countdown,omitempty"`
	RemainingSeconds int64        `json:"remainingSeconds"`
	Items            []string     `json:"items"`
	Highlights       []string     `json:"highlights,omitempty"`
}

// Board is a day's meals evaluated at Now.
type Board struct {
	Date    string     `json:"date"`
	Tier    meals.Tier `json:"tier"`
	Now     time.Time  `json:"now"`
	Meals   []MealView `json:"meals"`
	Current *MealView  `json:"current,omitempty"`
	Next    *Upcoming  `json:"next,omitempty"`
}

// Upcoming is the next meal to start, possibly on a later date.
type Upcoming struct {
	Date     string     `json:"date"`
	Tier     meals.Tier `json:"tier"`
	Meal     MealView   `json:"meal"`
	StartsAt time.Time  `json:"startsAt"`
}

// Week is a "Week N" section of consecutive catalog dates.
type Week struct {
	Label string            `json:"label"`
	Days  []meals.DailyMenu `json:"days"`
}
