package poller

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRefreshCachesData(t *testing.T) {
	calls := 0
	r := NewResource("test", 0, func(ctx context.Context) (int, error) {
		calls++
		return calls * 10, nil
	})

	if s := r.Snapshot(); s.HasData || s.Err != "" {
		t.Fatalf("fresh resource should be empty: %+v", s)
	}

	r.Refresh(context.Background())
	s := r.Snapshot()
	if !s.HasData || s.Data != 10 || s.Err != "" {
		t.Fatalf("snapshot = %+v", s)
	}
	if s.LastRefresh.IsZero() {
		t.Error("lastRefresh not recorded")
	}

	r.Refresh(context.Background())
	if s := r.Snapshot(); s.Data != 20 {
		t.Errorf("second refresh data = %v", s.Data)
	}
}

func TestErrorKeepsStaleData(t *testing.T) {
	fail := false
	r := NewResource("test", 0, func(ctx context.Context) (string, error) {
		if fail {
			return "", errors.New("upstream down")
		}
		return "good", nil
	})

	r.Refresh(context.Background())
	fail = true
	r.Refresh(context.Background())

	s := r.Snapshot()
	if s.Err != "upstream down" {
		t.Errorf("err = %q", s.Err)
	}
	if !s.HasData || s.Data != "good" {
		t.Errorf("stale data dropped: %+v", s)
	}

	fail = false
	r.Refresh(context.Background())
	if s := r.Snapshot(); s.Err != "" || s.Data != "good" {
		t.Errorf("recovery snapshot = %+v", s)
	}
}

func TestOverlappingRefreshCollapses(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	r := NewResource("test", 0, func(ctx context.Context) (int, error) {
		calls++
		close(started)
		<-release
		return calls, nil
	})

	done := make(chan struct{})
	go func() {
		r.Refresh(context.Background())
		close(done)
	}()

	<-started
	// This call must return immediately without a second fetch.
	r.Refresh(context.Background())
	close(release)
	<-done

	if calls != 1 {
		t.Errorf("fetch ran %d times, expected 1", calls)
	}
}

func TestResetClearsSnapshot(t *testing.T) {
	r := NewResource("test", 0, func(ctx context.Context) (int, error) {
		return 7, nil
	})
	r.Refresh(context.Background())
	r.Reset()

	s := r.Snapshot()
	if s.HasData || s.Data != 0 || s.Err != "" || !s.LastRefresh.IsZero() {
		t.Errorf("reset snapshot = %+v", s)
	}
}

func TestRefreshTimeoutBoundsFetch(t *testing.T) {
	r := NewResource("test", 10*time.Millisecond, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	r.Refresh(context.Background())

	if s := r.Snapshot(); s.Err == "" {
		t.Error("expected deadline error in snapshot")
	}
}
