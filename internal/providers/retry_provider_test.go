package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
	"github.com/preston-bernstein/campus-dining-service/internal/metrics"
)

type flakeyProvider struct {
	failures int
	err      error
	calls    int
}

func (f *flakeyProvider) FetchMonth(ctx context.Context, month string) (meals.Catalog, error) {
	_ = ctx
	_ = month
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return nil, f.err
		}
		return nil, errors.New("boom")
	}
	return meals.Catalog{"2025-05-01": {{Name: "ok"}}}, nil
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp := &flakeyProvider{failures: 2}
	rec := metrics.NewRecorder()
	rp := NewRetryingProvider(fp, slog.Default(), rec, "flakey", 3, time.Millisecond)

	catalog, err := rp.FetchMonth(context.Background(), "2025-05")
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if day, ok := catalog.Day("2025-05-01"); !ok || day[0].Name != "ok" {
		t.Fatalf("unexpected catalog %+v", catalog)
	}
	if fp.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.calls)
	}
	if rec.ProviderCalls("flakey") != 3 || rec.ProviderErrors("flakey") != 2 {
		t.Fatalf("unexpected provider metrics %+v", rec.Snapshot("flakey"))
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 2, time.Millisecond)

	_, err := rp.FetchMonth(context.Background(), "2025-05")
	if err == nil {
		t.Fatal("expected error after retries")
	}
	if fp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderDoesNotRetryMalformedPayload(t *testing.T) {
	fp := &flakeyProvider{failures: 5, err: fmt.Errorf("decode: %w", meals.ErrMalformedPayload)}
	rp := NewRetryingProvider(fp, nil, nil, "flakey", 3, time.Millisecond)

	_, err := rp.FetchMonth(context.Background(), "2025-05")
	if !errors.Is(err, meals.ErrMalformedPayload) {
		t.Fatalf("expected malformed payload error, got %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", fp.calls)
	}
}

func TestRetryingProviderRecordsRateLimits(t *testing.T) {
	fp := &flakeyProvider{failures: 1, err: &RateLimitError{StatusCode: 429, RetryAfter: time.Second}}
	rec := metrics.NewRecorder()
	rp := NewRetryingProvider(fp, nil, rec, "feed", 2, time.Millisecond)

	if _, err := rp.FetchMonth(context.Background(), "2025-05"); err != nil {
		t.Fatalf("expected success after rate limit, got %v", err)
	}
	if rec.RateLimitHits("feed") != 1 || rec.LastRetryAfter("feed") != time.Second {
		t.Fatalf("unexpected rate limit metrics %+v", rec.Snapshot("feed"))
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rp.FetchMonth(ctx, "2025-05")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestRetryingProviderUsesCustomBackoff(t *testing.T) {
	fp := &flakeyProvider{failures: 1}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 2, time.Hour).(*retryingProvider)

	calls := 0
	rp.newBackOff = func() backoff.BackOff {
		calls++
		return &backoff.ZeroBackOff{}
	}

	if _, err := rp.FetchMonth(context.Background(), "2025-05"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 1 || fp.calls != 2 {
		t.Fatalf("expected custom backoff to drive the retry, backoffs=%d calls=%d", calls, fp.calls)
	}
}

func TestRetryingProviderNilInner(t *testing.T) {
	rp := NewRetryingProvider(nil, nil, nil, "none", 0, 0)
	if _, err := rp.FetchMonth(context.Background(), "2025-05"); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
