package testutil

import (
	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
)

// SampleMeal returns a meal spanning start to end (whole hours) with one item.
func SampleMeal(name string, startHour, endHour int) meals.Meal {
	return meals.Meal{
		Name:      name,
		StartHour: startHour,
		EndHour:   endHour,
		Items:     []string{name + " special"},
	}
}

// SampleDay is breakfast 08:00-10:00 and lunch 12:30-14:00.
func SampleDay() []meals.Meal {
	lunch := SampleMeal("Lunch", 12, 14)
	lunch.StartMinute = 30
	return []meals.Meal{SampleMeal("Breakfast", 8, 10), lunch}
}

// SampleCatalog maps each date to SampleDay.
func SampleCatalog(dates ...string) meals.Catalog {
	c := make(meals.Catalog, len(dates))
	for _, d := range dates {
		c[d] = SampleDay()
	}
	return c
}

// StaticFallback serves a fixed catalog as the bundled tier.
type StaticFallback struct {
	Menu meals.Catalog
}

func (f StaticFallback) Catalog() meals.Catalog {
	return f.Menu.Clone()
}

func (f StaticFallback) Raw() []byte {
	raw, err := meals.EncodeCatalog(f.Menu)
	if err != nil {
		return nil
	}
	return raw
}
