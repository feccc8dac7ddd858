package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
	"github.com/preston-bernstein/campus-dining-service/internal/providers"
	"github.com/preston-bernstein/campus-dining-service/internal/timeutil"
)

// ErrMissingURL is returned when the client has no feed URL configured.
var ErrMissingURL = errors.New("feed: url not configured")

// Config controls how the client reaches the monthly menu feed.
type Config struct {
	URL          string
	HTTPClient   *http.Client
	MaxBodyBytes int64
	Timezone     string
}

// Client fetches monthly menu snapshots over HTTP.
type Client struct {
	url          string
	httpClient   httpDoer
	maxBodyBytes int64
	now          func() time.Time
	loc          *time.Location
}

// NewClient constructs a feed client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		url:          cfg.URL,
		httpClient:   resolveHTTPClient(cfg.HTTPClient),
		maxBodyBytes: resolveMaxBodyBytes(cfg.MaxBodyBytes),
		now:          time.Now,
		loc:          timeutil.ResolveLocation(cfg.Timezone),
	}
}

// FetchMonth retrieves and validates the catalog for month (YYYY-MM).
func (c *Client) FetchMonth(ctx context.Context, month string) (meals.Catalog, error) {
	if strings.TrimSpace(c.url) == "" {
		return nil, ErrMissingURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, expandURL(c.url, c.resolveMonth(month)), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    "feed rate limited",
		}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", meals.ErrMalformedPayload, c.maxBodyBytes)
	}
	return meals.DecodeCatalog(body)
}

func (c *Client) resolveMonth(month string) string {
	if month != "" {
		if _, err := time.Parse(timeutil.MonthLayout, month); err == nil {
			return month
		}
	}
	return c.now().In(c.loc).Format(timeutil.MonthLayout)
}
