package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/campus-dining-service/internal/menu"
)

// StubRefresher is a test double for poller.Refresher.
type StubRefresher struct {
	mu     sync.Mutex
	err    error
	stale  bool
	dates  []string
	Calls  atomic.Int32
	Notify chan struct{}
}

// SetResult configures the outcome of subsequent refreshes.
func (s *StubRefresher) SetResult(err error, stale bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	s.stale = stale
}

// Refresh records the date and returns the configured outcome.
func (s *StubRefresher) Refresh(ctx context.Context, date string) menu.RefreshResult {
	_ = ctx
	s.mu.Lock()
	s.dates = append(s.dates, date)
	err, stale := s.err, s.stale
	s.mu.Unlock()

	n := s.Calls.Add(1)
	if n == 1 && s.Notify != nil {
		close(s.Notify)
	}
	month := date
	if len(month) >= 7 {
		month = month[:7]
	}
	return menu.RefreshResult{
		Updated:  err == nil && !stale,
		Stale:    stale,
		Sequence: uint64(n),
		Month:    month,
		Err:      err,
	}
}

// Dates returns the dates refreshed so far, in call order.
func (s *StubRefresher) Dates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.dates...)
}

// StubKV is a test double for store.KV with injectable failures.
type StubKV struct {
	mu     sync.Mutex
	values map[string]string
	GetErr error
	SetErr error
	Sets   int
}

// Get returns the stored value or GetErr.
func (s *StubKV) Get(ctx context.Context, key string) (string, bool, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value or returns SetErr; attempts are counted either way.
func (s *StubKV) Set(ctx context.Context, key, value string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sets++
	if s.SetErr != nil {
		return s.SetErr
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}
