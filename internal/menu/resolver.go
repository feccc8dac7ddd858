// Package menu resolves the authoritative daily menu from the bundled, cached and remote tiers.
//
// Reads never block on the network and never fail. Refreshes are sequenced: each call takes a
// number before it fetches, and a result is applied only if no later-numbered refresh has been
// applied already.
package menu

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
	"github.com/preston-bernstein/campus-dining-service/internal/logging"
	"github.com/preston-bernstein/campus-dining-service/internal/metrics"
	"github.com/preston-bernstein/campus-dining-service/internal/providers"
	"github.com/preston-bernstein/campus-dining-service/internal/store"
	"github.com/preston-bernstein/campus-dining-service/internal/timeutil"
)

const (
	// DefaultTimeout bounds a single refresh.
	DefaultTimeout = 5 * time.Second
	// DefaultCacheKey is the key the monthly blob is persisted under.
	DefaultCacheKey = "monthlyMenu"
)

// ErrStaleRefresh marks a successful fetch that lost to a later refresh.
var ErrStaleRefresh = errors.New("menu: refresh superseded by a later refresh")

// Fallback supplies the bundled tier.
type Fallback interface {
	Catalog() meals.Catalog
	Raw() []byte
}

// Config tunes the resolver.
type Config struct {
	Timeout  time.Duration
	CacheKey string
	Location *time.Location
	// ReadOnly stops Load from seeding an empty cache.
	ReadOnly bool
}

// RefreshResult reports what a Refresh did. Err is informational; the resolver has already
// fallen back to the previous view when it is set.
type RefreshResult struct {
	Updated   bool          `json:"updated"`
	Stale     bool          `json:"stale"`
	Persisted bool          `json:"persisted"`
	Sequence  uint64        `json:"sequence"`
	Month     string        `json:"month"`
	Tier      meals.Tier    `json:"tier"`
	Duration  time.Duration `json:"-"`
	Err       error         `json:"-"`
}

// Status describes the view currently being served.
type Status struct {
	Tier      meals.Tier `json:"tier"`
	Sequence  uint64     `json:"sequence"`
	AppliedAt time.Time  `json:"appliedAt,omitempty"`
	Dates     int        `json:"dates"`
}

// view is immutable once published.
type view struct {
	catalog   meals.Catalog
	tier      meals.Tier
	seq       uint64
	appliedAt time.Time
}

// Resolver owns the cached tier. It is safe for concurrent use.
type Resolver struct {
	bundled  meals.Catalog
	fallback Fallback
	provider providers.MenuProvider
	cache    store.KV
	logger   *slog.Logger
	metrics  *metrics.Recorder
	timeout  time.Duration
	cacheKey string
	loc      *time.Location
	readOnly bool
	now      func() time.Time

	current atomic.Pointer[view]
	seq     atomic.Uint64

	applyMu sync.Mutex
	applied uint64
}

// NewResolver builds a resolver serving the bundled tier until Load or Refresh upgrades it.
// provider and cache may be nil.
func NewResolver(fallback Fallback, provider providers.MenuProvider, cache store.KV, logger *slog.Logger, recorder *metrics.Recorder, cfg Config) *Resolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.CacheKey == "" {
		cfg.CacheKey = DefaultCacheKey
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	var base meals.Catalog
	if fallback != nil {
		base = fallback.Catalog()
	}
	if base == nil {
		base = meals.Catalog{}
	}

	r := &Resolver{
		bundled:  base,
		fallback: fallback,
		provider: provider,
		cache:    cache,
		logger:   logger,
		metrics:  recorder,
		timeout:  cfg.Timeout,
		cacheKey: cfg.CacheKey,
		loc:      cfg.Location,
		readOnly: cfg.ReadOnly,
		now:      time.Now,
	}
	r.current.Store(&view{catalog: base, tier: meals.TierBundled})
	return r
}

// Load promotes the persisted cache to the current view. On first run the cache is seeded with
// the bundled payload unless the resolver is read-only. Failures are logged and leave the
// bundled tier in place.
func (r *Resolver) Load(ctx context.Context) meals.Tier {
	logger := logging.FromContext(ctx, r.logger)
	if r.cache == nil {
		return r.current.Load().tier
	}

	raw, ok, err := r.cache.Get(ctx, r.cacheKey)
	if err != nil {
		logging.WarnErr(logger, "menu cache read failed", err)
		return r.current.Load().tier
	}

	var catalog meals.Catalog
	if ok {
		catalog, err = meals.DecodeCatalog([]byte(raw))
		if err != nil {
			logging.WarnErr(logger, "ignoring malformed menu cache", err)
			return r.current.Load().tier
		}
	} else {
		if r.readOnly {
			return r.current.Load().tier
		}
		seed := r.seed()
		if seed == nil {
			return r.current.Load().tier
		}
		if err := r.cache.Set(ctx, r.cacheKey, string(seed)); err != nil {
			logging.WarnErr(logger, "menu cache seed failed", err)
			return r.current.Load().tier
		}
		catalog = r.bundled
		logging.Info(logger, "seeded menu cache from bundled data", logging.FieldCount, len(catalog))
	}

	r.applyMu.Lock()
	defer r.applyMu.Unlock()
	// A refresh that already landed is newer than anything on disk.
	if r.applied > 0 {
		return r.current.Load().tier
	}
	r.current.Store(&view{catalog: catalog, tier: meals.TierCached, appliedAt: r.now()})
	logging.Info(logger, "menu cache loaded", logging.FieldTier, meals.TierCached, logging.FieldCount, len(catalog))
	return meals.TierCached
}

func (r *Resolver) seed() []byte {
	if r.fallback == nil {
		return nil
	}
	return r.fallback.Raw()
}

// DailyMenu returns the best available menu for date. It never blocks on I/O and never fails:
// dates covered by no tier, and malformed dates, yield an empty meal list.
func (r *Resolver) DailyMenu(date string) meals.DailyMenu {
	if !timeutil.IsDate(date) {
		return meals.NewDailyMenu(date, meals.TierBundled, nil)
	}
	v := r.current.Load()
	if v.tier != meals.TierBundled {
		if day, ok := v.catalog.Day(date); ok {
			return meals.NewDailyMenu(date, v.tier, day)
		}
	}
	day, _ := r.bundled.Day(date)
	return meals.NewDailyMenu(date, meals.TierBundled, day)
}

// Catalog returns a copy of the monthly view currently served and its tier.
func (r *Resolver) Catalog() (meals.Catalog, meals.Tier) {
	v := r.current.Load()
	return v.catalog.Clone(), v.tier
}

// Status reports the current view.
func (r *Resolver) Status() Status {
	v := r.current.Load()
	return Status{
		Tier:      v.tier,
		Sequence:  v.seq,
		AppliedAt: v.appliedAt,
		Dates:     len(v.catalog),
	}
}

// Refresh fetches the month containing date (the current month if date is invalid) and, on
// success, persists it and swaps it in as the remote tier. Fetch, timeout and payload failures
// leave both the cache and the served view untouched.
func (r *Resolver) Refresh(ctx context.Context, date string) RefreshResult {
	seq := r.seq.Add(1)
	start := r.now()
	month, err := timeutil.MonthOf(date)
	if err != nil {
		month = r.now().In(r.loc).Format(timeutil.MonthLayout)
	}
	logger := logging.WithRefresh(logging.FromContext(ctx, r.logger), seq, month)

	result := RefreshResult{Sequence: seq, Month: month}
	finish := func(outcome string) RefreshResult {
		result.Tier = r.current.Load().tier
		result.Duration = r.now().Sub(start)
		r.metrics.RecordRefresh(outcome, result.Duration)
		return result
	}

	if r.provider == nil {
		result.Err = providers.ErrProviderUnavailable
		return finish(metrics.OutcomeFailed)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	catalog, err := r.fetch(fetchCtx, month)
	if err == nil && catalog == nil {
		catalog = meals.Catalog{}
	}
	if err == nil {
		err = catalog.Validate()
	}
	if err != nil {
		result.Err = err
		logging.WarnErr(logger, "menu refresh failed", err)
		return finish(metrics.OutcomeFailed)
	}

	blob, err := meals.EncodeCatalog(catalog)
	if err != nil {
		result.Err = err
		logging.WarnErr(logger, "menu refresh encode failed", err)
		return finish(metrics.OutcomeFailed)
	}

	r.applyMu.Lock()
	defer r.applyMu.Unlock()

	if seq <= r.applied {
		result.Stale = true
		result.Err = ErrStaleRefresh
		logging.Info(logger, "discarding stale menu refresh", "applied_sequence", r.applied)
		return finish(metrics.OutcomeStale)
	}

	if r.cache != nil {
		persistCtx, cancelPersist := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		err := r.cache.Set(persistCtx, r.cacheKey, string(blob))
		cancelPersist()
		if err != nil {
			logging.WarnErr(logger, "menu cache write failed; serving fetched menu from memory", err)
		} else {
			result.Persisted = true
		}
	}

	r.current.Store(&view{catalog: catalog.Clone(), tier: meals.TierRemote, seq: seq, appliedAt: r.now()})
	r.applied = seq
	result.Updated = true
	logging.Info(logger, "menu refresh applied", logging.FieldCount, len(catalog), "persisted", result.Persisted)
	return finish(metrics.OutcomeApplied)
}

type fetchResult struct {
	catalog meals.Catalog
	err     error
}

// fetch returns when the provider does or when ctx ends, whichever comes first. A result that
// arrives after ctx is done is dropped.
func (r *Resolver) fetch(ctx context.Context, month string) (meals.Catalog, error) {
	done := make(chan fetchResult, 1)
	go func() {
		catalog, err := r.provider.FetchMonth(ctx, month)
		done <- fetchResult{catalog: catalog, err: err}
	}()

	select {
	case res := <-done:
		if res.err == nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return res.catalog, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
