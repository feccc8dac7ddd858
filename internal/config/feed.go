package config

// FeedConfig controls how the remote monthly menu is fetched.
type FeedConfig struct {
	// URL may contain a {month} placeholder replaced with YYYY-MM.
	URL            string
	RefreshTimeout Duration
	RetryAttempts  int
	// BundledPath overrides the embedded fallback menu when set.
	BundledPath string
}

func loadFeed() FeedConfig {
	return FeedConfig{
		URL:            envOrDefault(envFeedURL, defaultFeedURL),
		RefreshTimeout: durationEnvOrDefault(envRefreshTimeout, defaultRefreshTimeout),
		RetryAttempts:  intEnvOrDefault(envRetryAttempts, defaultRetryAttempts),
		BundledPath:    envOrDefault(envBundledPath, ""),
	}
}
