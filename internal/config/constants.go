package config

import "time"

const (
	envPort           = "PORT"
	envPollInterval   = "POLL_INTERVAL"
	envProvider       = "PROVIDER"
	envTimezone       = "TIMEZONE"
	envClockStyle     = "CLOCK_STYLE"
	envFeedURL        = "MENU_FEED_URL"
	envRefreshTimeout = "MENU_REFRESH_TIMEOUT"
	envRetryAttempts  = "MENU_RETRY_ATTEMPTS"
	envBundledPath    = "MENU_BUNDLED_PATH"
	envCacheBackend   = "CACHE_BACKEND"
	envCachePath      = "CACHE_PATH"
	envCacheKey       = "CACHE_KEY"
	envAdminToken     = "ADMIN_TOKEN"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"
	envDotEnvFile     = "ENV_FILE"

	defaultPort = "4000"
	// The feed is a monthly snapshot; refreshing every half hour is plenty.
	defaultPollInterval   = 30 * Duration(time.Minute)
	defaultProvider       = "feed"
	defaultClockStyle     = "12h"
	defaultFeedURL        = "https://raw.githubusercontent.com/a-d-iii/app/main/monthly-menu-{month}.json"
	defaultRefreshTimeout = 5 * Duration(time.Second)
	defaultRetryAttempts  = 2
	defaultCacheBackend   = "file"
	defaultCachePath      = "data/cache"
	defaultCacheKey       = "monthlyMenu"
	defaultMetricsPort    = "9090"
	defaultDotEnvFile     = ".env"
)
