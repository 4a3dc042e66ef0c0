package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAvailabilityCachesAndResets(t *testing.T) {
	calls := 0
	var probeErr error
	a := NewAvailability(func(ctx context.Context) error {
		calls++
		return probeErr
	}, time.Minute)

	clock := time.Unix(1000, 0)
	a.now = func() time.Time { return clock }

	ok, err := a.Available(context.Background())
	if !ok || err != nil || calls != 1 {
		t.Fatalf("first probe: ok=%v err=%v calls=%d", ok, err, calls)
	}

	probeErr = errors.New("db down")
	if ok, _ := a.Available(context.Background()); !ok || calls != 1 {
		t.Fatalf("cached result not used: ok=%v calls=%d", ok, calls)
	}

	a.Reset()
	ok, err = a.Available(context.Background())
	if ok || err == nil || calls != 2 {
		t.Fatalf("after reset: ok=%v err=%v calls=%d", ok, err, calls)
	}

	probeErr = nil
	clock = clock.Add(2 * time.Minute)
	if ok, _ := a.Available(context.Background()); !ok || calls != 3 {
		t.Fatalf("stale entry not re-probed: ok=%v calls=%d", ok, calls)
	}
}

func TestSnapshotCacheDisabled(t *testing.T) {
	c := NewSnapshotCache(nil, time.Minute, nil)
	if c.Enabled() {
		t.Fatal("cache without client reported enabled")
	}

	var dst []string
	c.SetCategories(context.Background(), []string{"a"})
	if c.GetCategories(context.Background(), &dst) {
		t.Error("disabled cache returned a hit")
	}
	c.Invalidate(context.Background())
}
