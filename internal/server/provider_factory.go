package server

import (
	"log/slog"

	"github.com/preston-bernstein/campus-dining-service/internal/config"
	"github.com/preston-bernstein/campus-dining-service/internal/metrics"
	"github.com/preston-bernstein/campus-dining-service/internal/providers"
)

// providerFactory assembles the remote provider with the shared retry wrapper.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build returns nil when cfg selects offline mode.
func (f providerFactory) build(cfg config.Config) providers.MenuProvider {
	base := selectProvider(cfg, f.logger)
	if base == nil {
		return nil
	}
	return providers.NewRetryingProvider(base, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), cfg.Feed.RetryAttempts, 0)
}
