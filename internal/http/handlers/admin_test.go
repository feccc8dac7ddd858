package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/preston-bernstein/campus-dining-service/internal/app/dining"
	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
	"github.com/preston-bernstein/campus-dining-service/internal/menu"
	"github.com/preston-bernstein/campus-dining-service/internal/providers"
	"github.com/preston-bernstein/campus-dining-service/internal/teststubs"
	"github.com/preston-bernstein/campus-dining-service/internal/testutil"
	"github.com/preston-bernstein/campus-dining-service/internal/timeutil"
)

func newAdmin(provider providers.MenuProvider) *AdminHandler {
	h := NewAdminHandler(newTestService(provider), "secret", nil)
	h.now = testutil.NowAt(testutil.At("2025-05-01", 9, 0, time.UTC))
	return h
}

func refreshRequest(path, auth string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return req
}

func TestAdminRefreshRequiresAuth(t *testing.T) {
	h := newAdmin(nil)

	for _, auth := range []string{"", "Bearer wrong", "secret", "Basic secret"} {
		rr := testutil.ServeRequest(http.HandlerFunc(h.RefreshMenu), refreshRequest("/admin/menu/refresh", auth))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	}
}

func TestAdminRefreshDisabledWithoutToken(t *testing.T) {
	h := NewAdminHandler(newTestService(nil), "", nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.RefreshMenu), refreshRequest("/admin/menu/refresh", "Bearer "))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminRefreshRequiresPost(t *testing.T) {
	h := newAdmin(nil)

	rr := testutil.Serve(http.HandlerFunc(h.RefreshMenu), http.MethodGet, "/admin/menu/refresh", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}

func TestAdminRefreshAppliesRemoteMenu(t *testing.T) {
	remote := meals.Catalog{"2025-05-01": {testutil.SampleMeal("Brunch", 10, 12)}}
	h := newAdmin(testutil.GoodProvider{Catalog: remote})

	rr := testutil.ServeRequest(http.HandlerFunc(h.RefreshMenu), refreshRequest("/admin/menu/refresh", "bearer secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp RefreshResponse
	testutil.DecodeJSON(t, rr, &resp)
	if !resp.Updated || resp.Stale || resp.Tier != meals.TierRemote {
		t.Fatalf("unexpected refresh response %+v", resp)
	}
	if resp.Month != "2025-05" || resp.Sequence != 1 || resp.Error != "" {
		t.Fatalf("unexpected refresh metadata %+v", resp)
	}
	if got := h.svc.Day("2025-05-01"); got.Tier != meals.TierRemote {
		t.Fatalf("expected remote tier after refresh, got %s", got.Tier)
	}
}

func TestAdminRefreshReportsProviderFailure(t *testing.T) {
	h := newAdmin(testutil.ErrProvider{Err: errors.New("feed down")})

	rr := testutil.ServeRequest(http.HandlerFunc(h.RefreshMenu), refreshRequest("/admin/menu/refresh?date=2025-06-10", "Bearer secret"))
	testutil.AssertStatus(t, rr, http.StatusBadGateway)

	var resp RefreshResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Updated || resp.Error == "" || resp.Month != "2025-06" {
		t.Fatalf("unexpected failure response %+v", resp)
	}
	if got := h.svc.Day("2025-05-01"); got.Tier != meals.TierBundled {
		t.Fatalf("expected bundled tier kept, got %s", got.Tier)
	}
}

func TestAdminRefreshRejectsInvalidDate(t *testing.T) {
	h := newAdmin(nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.RefreshMenu), refreshRequest("/admin/menu/refresh?date=bad", "Bearer secret"))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestAdminRefreshAppliesEvenWhenCacheWriteFails(t *testing.T) {
	cache := &teststubs.StubKV{SetErr: errors.New("disk full")}
	remote := meals.Catalog{"2025-05-01": {testutil.SampleMeal("Brunch", 10, 12)}}
	res := menu.NewResolver(testutil.StaticFallback{Menu: testutil.SampleCatalog("2025-05-01")},
		testutil.GoodProvider{Catalog: remote}, cache, nil, nil, menu.Config{Location: time.UTC})
	h := NewAdminHandler(dining.NewService(res, timeutil.Clock24Hour, time.UTC), "secret", nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.RefreshMenu), refreshRequest("/admin/menu/refresh?date=2025-05-01", "Bearer secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp RefreshResponse
	testutil.DecodeJSON(t, rr, &resp)
	if !resp.Updated || resp.Persisted {
		t.Fatalf("expected applied but unpersisted refresh, got %+v", resp)
	}
	if cache.Sets != 1 {
		t.Fatalf("expected one cache write attempt, got %d", cache.Sets)
	}
}
