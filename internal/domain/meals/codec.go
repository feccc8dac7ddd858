package meals

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/preston-bernstein/campus-dining-service/internal/timeutil"
)

// ErrMalformedPayload marks menu JSON that does not match the date -> []meal shape.
var ErrMalformedPayload = errors.New("malformed menu payload")

// mealPayload uses pointers so missing required fields can be told apart from zero values.
type mealPayload struct {
	Name        *string   `json:"name"`
	StartHour   *int      `json:"startHour"`
	StartMinute *int      `json:"startMinute"`
	EndHour     *int      `json:"endHour"`
	EndMinute   *int      `json:"endMinute"`
	Items       *[]string `json:"items"`
	Highlights  []string  `json:"highlights"`
}

// DecodeCatalog parses and validates a monthly menu. Any violation rejects the whole payload.
func DecodeCatalog(data []byte) (Catalog, error) {
	var raw map[string]*[]mealPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected object keyed by date", ErrMalformedPayload)
	}

	catalog := make(Catalog, len(raw))
	for date, day := range raw {
		if !timeutil.IsDate(date) {
			return nil, fmt.Errorf("%w: invalid date key %q", ErrMalformedPayload, date)
		}
		if day == nil {
			return nil, fmt.Errorf("%w: %s: expected meal array", ErrMalformedPayload, date)
		}
		list := make([]Meal, 0, len(*day))
		for i, p := range *day {
			meal, err := p.toMeal()
			if err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %v", ErrMalformedPayload, date, i, err)
			}
			list = append(list, meal)
		}
		catalog[date] = list
	}
	return catalog, nil
}

// EncodeCatalog serializes a catalog in the feed's shape.
func EncodeCatalog(c Catalog) ([]byte, error) {
	if c == nil {
		c = Catalog{}
	}
	return json.Marshal(c)
}

// Validate checks the invariants DecodeCatalog enforces on an in-memory catalog.
func (c Catalog) Validate() error {
	for date, day := range c {
		if !timeutil.IsDate(date) {
			return fmt.Errorf("%w: invalid date key %q", ErrMalformedPayload, date)
		}
		for i, m := range day {
			if err := m.Validate(); err != nil {
				return fmt.Errorf("%w: %s[%d]: %v", ErrMalformedPayload, date, i, err)
			}
		}
	}
	return nil
}

// Validate checks name, time components and window ordering.
func (m Meal) Validate() error {
	if m.Name == "" {
		return errors.New("name required")
	}
	if err := m.Start().Validate(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := m.End().Validate(); err != nil {
		return fmt.Errorf("end: %w", err)
	}
	if !m.Start().Before(m.End()) {
		return fmt.Errorf("window %02d:%02d-%02d:%02d must start before it ends",
			m.StartHour, m.StartMinute, m.EndHour, m.EndMinute)
	}
	return nil
}

func (p mealPayload) toMeal() (Meal, error) {
	switch {
	case p.Name == nil:
		return Meal{}, errors.New("name missing")
	case p.StartHour == nil || p.StartMinute == nil:
		return Meal{}, errors.New("start time missing")
	case p.EndHour == nil || p.EndMinute == nil:
		return Meal{}, errors.New("end time missing")
	case p.Items == nil:
		return Meal{}, errors.New("items missing")
	}
	meal := Meal{
		Name:        *p.Name,
		StartHour:   *p.StartHour,
		StartMinute: *p.StartMinute,
		EndHour:     *p.EndHour,
		EndMinute:   *p.EndMinute,
		Items:       append([]string{}, (*p.Items)...),
	}
	if p.Highlights != nil {
		meal.Highlights = append([]string{}, p.Highlights...)
	}
	if err := meal.Validate(); err != nil {
		return Meal{}, err
	}
	return meal, nil
}
