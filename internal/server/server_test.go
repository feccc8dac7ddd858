package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/preston-bernstein/campus-dining-service/internal/config"
	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
	"github.com/preston-bernstein/campus-dining-service/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testConfig() config.Config {
	return config.Config{
		Port:         "0",
		PollInterval: time.Hour,
		Provider:     "bundled",
		ClockStyle:   "24h",
		Timezone:     "UTC",
		Feed:         config.FeedConfig{RefreshTimeout: time.Second, RetryAttempts: 1},
		Cache:        config.CacheConfig{Backend: "memory", Key: "monthlyMenu"},
		Metrics:      config.MetricsConfig{Enabled: false},
	}
}

const feedPayload = `{
	"2025-05-01": [
		{"name": "FromFeed", "startHour": 8, "startMinute": 0, "endHour": 10, "endMinute": 0, "items": ["Dosa"]}
	]
}`

// feedConfig points cfg at a local feed serving feedPayload.
func feedConfig(t *testing.T, cfg config.Config) config.Config {
	t.Helper()
	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Connection", "close")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedPayload))
	}))
	t.Cleanup(feedSrv.Close)
	cfg.Provider = "feed"
	cfg.Feed.URL = feedSrv.URL + "/monthly-menu-{month}.json"
	return cfg
}

func newTestServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	logger, _ := testutil.NewBufferLogger()
	srv, err := New(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("unexpected error building server: %v", err)
	}
	t.Cleanup(func() { _ = srv.components.Close() })
	return srv
}

type blockingHTTPServer struct {
	addr          string
	handler       http.Handler
	shutdownCalls int
	unblock       chan struct{}
}

func (s *blockingHTTPServer) ListenAndServe() error {
	return nil
}

func (s *blockingHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdownCalls++
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.unblock:
		return nil
	}
}

func (s *blockingHTTPServer) Addr() string {
	return s.addr
}

func (s *blockingHTTPServer) Handler() http.Handler {
	return s.handler
}

func TestServerServesHealthAndMenu(t *testing.T) {
	srv := newTestServer(t, testConfig())
	router := srv.Handler()

	rr := testutil.Serve(router, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected middleware to set X-Request-ID")
	}

	dm := testutil.GetDailyMenu(t, router, "2025-05-01")
	// First run seeds the empty cache from the bundled payload.
	if dm.Tier != meals.TierCached {
		t.Fatalf("expected cached tier after seeding, got %s", dm.Tier)
	}
	if len(dm.Meals) == 0 || dm.Meals[0].Name != "Breakfast" {
		t.Fatalf("expected bundled breakfast, got %+v", dm.Meals)
	}
}

func TestServerPollerRefreshesMenu(t *testing.T) {
	srv := newTestServer(t, feedConfig(t, testConfig()))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv.poller.Start(ctx)
	deadline := time.Now().Add(time.Second)
	for srv.components.Resolver.Status().Tier != meals.TierRemote {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for poller refresh")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := srv.poller.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}
	if !srv.poller.Status().IsReady() {
		t.Fatalf("expected poller ready after a successful refresh, got %+v", srv.poller.Status())
	}
	if dm := srv.components.Resolver.DailyMenu("2025-05-01"); dm.Meals[0].Name != "FromFeed" {
		t.Fatalf("expected feed data to be served, got %+v", dm)
	}
}

func TestOfflineModeKeepsCachedFeedData(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.Cache = config.CacheConfig{Backend: "file", Path: t.TempDir(), Key: "monthlyMenu"}

	// A previous online run leaves feed data in the cache.
	online := newTestServer(t, feedConfig(t, cfg))
	if res := online.components.Resolver.Refresh(ctx, "2025-05-01"); !res.Updated || !res.Persisted {
		t.Fatalf("expected feed refresh to persist, got %+v", res)
	}

	cfg.Provider = "bundled"
	srv := newTestServer(t, cfg)
	if srv.poller != nil || srv.components.Provider != nil {
		t.Fatalf("expected no poller or provider offline, got %T %T", srv.poller, srv.components.Provider)
	}
	res := srv.components.Resolver.Refresh(ctx, "2025-05-01")
	if res.Updated || res.Err == nil {
		t.Fatalf("expected offline refresh to be rejected, got %+v", res)
	}

	dm := srv.components.Resolver.DailyMenu("2025-05-01")
	if dm.Tier != meals.TierCached || dm.Meals[0].Name != "FromFeed" {
		t.Fatalf("expected cached feed data to survive, got %+v", dm)
	}
	raw, ok, err := srv.components.Cache.Get(ctx, "monthlyMenu")
	if err != nil || !ok || !strings.Contains(raw, "FromFeed") {
		t.Fatalf("expected cache to still hold feed data, ok=%v err=%v", ok, err)
	}
}

func TestRunWithoutPollerShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	httpSrv := testutil.NewStubHTTPServer(":0")
	srv := newServerWithDeps(config.Config{}, nil, nil, httpSrv, nil)

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean run, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not return after cancel")
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected http shutdown, got %d", httpSrv.ShutdownCalls)
	}
}

func TestNewFailsOnMissingBundledFile(t *testing.T) {
	cfg := testConfig()
	cfg.Feed.BundledPath = filepath.Join(t.TempDir(), "missing.json")

	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for missing bundled file")
	}
}

func TestAdminRouteMountedOnlyWithToken(t *testing.T) {
	srv := newTestServer(t, testConfig())
	req := httptest.NewRequest(http.MethodPost, "/admin/menu/refresh?date=2025-05-01", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr := testutil.ServeRequest(srv.Handler(), req)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	cfg := feedConfig(t, testConfig())
	cfg.AdminToken = "secret"
	srv = newTestServer(t, cfg)
	req = httptest.NewRequest(http.MethodPost, "/admin/menu/refresh?date=2025-05-01", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr = testutil.ServeRequest(srv.Handler(), req)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	httpSrv := testutil.NewStubHTTPServer(":0")

	srv := newServerWithDeps(config.Config{}, nil, nil, httpSrv, p)
	srv.gracefulShutdown()

	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	blocking := &blockingHTTPServer{
		addr:    ":0",
		handler: http.NewServeMux(),
		unblock: make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, nil, blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.shutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.shutdownCalls)
	}
	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	p := &testutil.StubPoller{Err: errors.New("stop failure")}
	httpSrv := testutil.NewStubHTTPServer(":0")

	srv := newServerWithDeps(config.Config{}, logger, nil, httpSrv, p)
	srv.gracefulShutdown()

	if p.StopCalls != 1 || httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected stop and shutdown, got stop=%d shutdown=%d", p.StopCalls, httpSrv.ShutdownCalls)
	}
	testutil.AssertLogged(t, buf, "failed to stop poller")
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plr := &testutil.StubPoller{}
	httpSrv := testutil.NewStubHTTPServer(":0")
	metricsSrv := testutil.NewStubHTTPServer(":9090")
	metricsStopped := 0

	srv := newServerWithDeps(config.Config{}, nil, nil, httpSrv, plr)
	srv.metricsServer = metricsSrv
	srv.metricsStop = func(context.Context) error {
		metricsStopped++
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean run, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not return after cancel")
	}

	if plr.StartCalls != 1 || plr.StopCalls != 1 {
		t.Fatalf("expected poller start/stop once, got %d/%d", plr.StartCalls, plr.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 || metricsSrv.ShutdownCalls != 1 {
		t.Fatalf("expected both servers shut down, got http=%d metrics=%d", httpSrv.ShutdownCalls, metricsSrv.ShutdownCalls)
	}
	if metricsStopped != 1 {
		t.Fatalf("expected metrics shutdown once, got %d", metricsStopped)
	}
}

func TestRunReturnsListenErrorAndShutsDown(t *testing.T) {
	plr := &testutil.StubPoller{}
	httpSrv := testutil.NewStubHTTPServer(":0")
	httpSrv.ListenErr = errors.New("address in use")

	srv := newServerWithDeps(config.Config{}, nil, nil, httpSrv, plr)

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background()) }()

	select {
	case err := <-done:
		if err == nil || err.Error() != "address in use" {
			t.Fatalf("expected listen error, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not return after listen failure")
	}
	if plr.StopCalls != 1 || httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown after listen failure, got stop=%d shutdown=%d", plr.StopCalls, httpSrv.ShutdownCalls)
	}
}

func TestServeTreatsServerClosedAsClean(t *testing.T) {
	httpSrv := testutil.NewStubHTTPServer(":0")
	_ = httpSrv.Shutdown(context.Background())

	if err := serve("http", httpSrv, nil); err != nil {
		t.Fatalf("expected nil for ErrServerClosed, got %v", err)
	}
}
