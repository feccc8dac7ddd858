package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
	"github.com/preston-bernstein/campus-dining-service/internal/logging"
	"github.com/preston-bernstein/campus-dining-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 2 * time.Second
)

// retryingProvider wraps a MenuProvider with exponential backoff. The caller's context bounds the total time.
type retryingProvider struct {
	inner       MenuProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/initial are <= 0, defaults are used.
func NewRetryingProvider(inner MenuProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) MenuProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *retryingProvider) FetchMonth(ctx context.Context, month string) (meals.Catalog, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	var (
		catalog meals.Catalog
		attempt int
	)
	operation := func() error {
		attempt++
		start := time.Now()
		result, err := r.inner.FetchMonth(ctx, month)
		r.metrics.RecordProviderAttempt(r.name, time.Since(start), err)
		if err != nil {
			if rl, ok := AsRateLimitError(err); ok {
				r.metrics.RecordRateLimit(r.name, rl.RetryAfter)
			}
			if !Retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		catalog = result
		return nil
	}
	notify := func(err error, delay time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch retry",
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			"error", err,
		)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxAttempts-1)), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch failed",
			"attempts", attempt,
			logging.FieldMonth, month,
			"error", err,
		)
		return nil, err
	}
	return catalog, nil
}
