package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/preston-bernstein/campus-dining-service/internal/app/dining"
	"github.com/preston-bernstein/campus-dining-service/internal/config"
	"github.com/preston-bernstein/campus-dining-service/internal/logging"
	"github.com/preston-bernstein/campus-dining-service/internal/menu"
	"github.com/preston-bernstein/campus-dining-service/internal/metrics"
	"github.com/preston-bernstein/campus-dining-service/internal/providers"
	"github.com/preston-bernstein/campus-dining-service/internal/providers/bundled"
	"github.com/preston-bernstein/campus-dining-service/internal/store"
	"github.com/preston-bernstein/campus-dining-service/internal/timeutil"
)

// Components is the menu stack shared by the HTTP server and the CLI. Provider is nil in
// offline mode.
type Components struct {
	Location *time.Location
	Bundled  *bundled.Source
	Provider providers.MenuProvider
	Cache    store.KV
	Resolver *menu.Resolver
	Service  *dining.Service
}

// BuildComponents wires the bundled tier, cache, remote provider and resolver from cfg, then
// promotes the persisted cache. Call Close when done.
func BuildComponents(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Components, error) {
	loc := timeutil.ResolveLocation(cfg.Timezone)

	source, err := bundled.Load(cfg.Feed.BundledPath)
	if err != nil {
		return nil, fmt.Errorf("load bundled menu: %w", err)
	}

	cache, err := buildStore(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("open menu cache: %w", err)
	}

	provider := newProviderFactory(logger, recorder).build(cfg)
	resolver := menu.NewResolver(source, provider, cache, logger, recorder, menu.Config{
		Timeout:  time.Duration(cfg.Feed.RefreshTimeout),
		CacheKey: cfg.Cache.Key,
		Location: loc,
		ReadOnly: cfg.Cache.ReadOnly,
	})
	tier := resolver.Load(ctx)
	logging.Info(logger, "menu loaded",
		slog.String(logging.FieldTier, string(tier)),
		slog.String(logging.FieldProvider, normalizeProviderName(cfg.Provider, provider)),
		slog.String("cache_backend", cfg.Cache.Backend),
	)

	return &Components{
		Location: loc,
		Bundled:  source,
		Provider: provider,
		Cache:    cache,
		Resolver: resolver,
		Service:  dining.NewService(resolver, timeutil.ParseClockStyle(cfg.ClockStyle), loc),
	}, nil
}

// Close releases the cache backend when it holds resources.
func (c *Components) Close() error {
	if c == nil {
		return nil
	}
	if closer, ok := c.Cache.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
