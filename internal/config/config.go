package config

// Config holds runtime configuration for the server and CLI.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	Timezone     string
	ClockStyle   string
	AdminToken   string
	Feed         FeedConfig
	Cache        CacheConfig
	Metrics      MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:     choiceEnvOrDefault(envProvider, defaultProvider),
		Timezone:     envOrDefault(envTimezone, ""),
		ClockStyle:   choiceEnvOrDefault(envClockStyle, defaultClockStyle),
		AdminToken:   envOrDefault(envAdminToken, ""),
		Feed:         loadFeed(),
		Cache:        loadCache(),
		Metrics:      loadMetrics(),
	}
}
