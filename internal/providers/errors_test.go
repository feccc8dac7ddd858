package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestStatusErrorUnwrapsSentinel(t *testing.T) {
	err := &StatusError{Provider: "feed", StatusCode: 503, Body: "down"}
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatal("expected ErrUnexpectedStatus")
	}
	if err.Error() != "feed: unexpected status 503: down" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"network", errors.New("connection reset"), true},
		{"server error", &StatusError{StatusCode: 502}, true},
		{"not found", &StatusError{StatusCode: 404}, false},
		{"rate limited", &RateLimitError{StatusCode: 429}, true},
		{"malformed", fmt.Errorf("decode: %w", meals.ErrMalformedPayload), false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), false},
		{"unavailable", ErrProviderUnavailable, false},
	}
	for _, tc := range cases {
		if got := Retryable(tc.err); got != tc.want {
			t.Fatalf("%s: Retryable = %v, want %v", tc.name, got, tc.want)
		}
	}
}
