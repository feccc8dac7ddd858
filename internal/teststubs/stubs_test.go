package teststubs

import (
	"context"
	"errors"
	"testing"
)

func TestStubRefresherTracksCalls(t *testing.T) {
	r := &StubRefresher{Notify: make(chan struct{})}
	res := r.Refresh(context.Background(), "2025-05-01")
	if !res.Updated || res.Month != "2025-05" || res.Sequence != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	select {
	case <-r.Notify:
	default:
		t.Fatal("expected notify to close on first call")
	}

	boom := errors.New("boom")
	r.SetResult(boom, false)
	res = r.Refresh(context.Background(), "x")
	if res.Updated || !errors.Is(res.Err, boom) || res.Month != "x" {
		t.Fatalf("unexpected failure result %+v", res)
	}
	if got := r.Dates(); len(got) != 2 || got[0] != "2025-05-01" {
		t.Fatalf("unexpected dates %v", got)
	}
	if r.Calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", r.Calls.Load())
	}
}

func TestStubKV(t *testing.T) {
	kv := &StubKV{}
	ctx := context.Background()
	if _, ok, err := kv.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, _ := kv.Get(ctx, "k"); !ok || v != "v" {
		t.Fatalf("unexpected value %q", v)
	}

	kv.SetErr = errors.New("read-only")
	if err := kv.Set(ctx, "k", "w"); !errors.Is(err, kv.SetErr) {
		t.Fatalf("expected set error, got %v", err)
	}
	kv.GetErr = errors.New("gone")
	if _, _, err := kv.Get(ctx, "k"); !errors.Is(err, kv.GetErr) {
		t.Fatalf("expected get error, got %v", err)
	}
	if kv.Sets != 2 {
		t.Fatalf("expected 2 set attempts, got %d", kv.Sets)
	}
}
