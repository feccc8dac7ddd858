package config

// CacheConfig selects the key-value store backing the cached menu tier.
type CacheConfig struct {
	Backend string // memory, file or sqlite
	Path    string // directory for file, database file for sqlite
	Key     string
	// ReadOnly opens the cache without seeding or creating it.
	ReadOnly bool
}

func loadCache() CacheConfig {
	return CacheConfig{
		Backend: choiceEnvOrDefault(envCacheBackend, defaultCacheBackend),
		Path:    envOrDefault(envCachePath, defaultCachePath),
		Key:     envOrDefault(envCacheKey, defaultCacheKey),
	}
}
