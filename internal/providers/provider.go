package providers

import (
	"context"

	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
)

// MenuProvider fetches the monthly menu containing month (YYYY-MM).
// Implementations validate the payload and return meals.ErrMalformedPayload on shape errors.
type MenuProvider interface {
	FetchMonth(ctx context.Context, month string) (meals.Catalog, error)
}
