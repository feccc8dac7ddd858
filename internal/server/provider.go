package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/campus-dining-service/internal/config"
	"github.com/preston-bernstein/campus-dining-service/internal/logging"
	"github.com/preston-bernstein/campus-dining-service/internal/providers"
	"github.com/preston-bernstein/campus-dining-service/internal/providers/feed"
)

// selectProvider returns the remote provider for cfg, or nil in offline mode. The bundled
// snapshot is never a remote source: it only backs the bundled tier.
func selectProvider(cfg config.Config, logger *slog.Logger) providers.MenuProvider {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "feed", "":
		return feed.NewClient(feed.Config{
			URL:      cfg.Feed.URL,
			Timezone: cfg.Timezone,
		})
	case "bundled", "offline":
		return nil
	default:
		logging.Warn(logger, "unknown provider, serving bundled and cached menus only", slog.String(logging.FieldProvider, cfg.Provider))
		return nil
	}
}
