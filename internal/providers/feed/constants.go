package feed

import "time"

const (
	providerName        = "feed"
	monthPlaceholder    = "{month}"
	defaultHTTPTimeout  = 10 * time.Second
	defaultMaxBodyBytes = 4 << 20
	errorBodyLimit      = 512
)
