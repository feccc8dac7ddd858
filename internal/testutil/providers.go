package testutil

import (
	"context"

	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
	"github.com/preston-bernstein/campus-dining-service/internal/providers"
)

// GoodProvider returns a copy of the provided catalog with no error.
type GoodProvider struct {
	Catalog meals.Catalog
}

func (p GoodProvider) FetchMonth(ctx context.Context, month string) (meals.Catalog, error) {
	_ = ctx
	_ = month
	return p.Catalog.Clone(), nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchMonth(ctx context.Context, month string) (meals.Catalog, error) {
	return nil, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchMonth(ctx context.Context, month string) (meals.Catalog, error) {
	return nil, providers.ErrProviderUnavailable
}

// HangingProvider blocks until the context ends, like a feed that never answers.
type HangingProvider struct{}

func (HangingProvider) FetchMonth(ctx context.Context, month string) (meals.Catalog, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
