package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/netpesa/netpesa/billing"
)

func newDashboardFixture(t *testing.T, handler http.HandlerFunc) *DashboardService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Cleanup(ResetBillingAPI)

	SetBillingAPI(billing.NewClient(billing.Config{BaseURL: srv.URL}, billing.StaticToken("t")))
	return NewDashboardService()
}

func TestRefreshAllIsolatesSourceFailures(t *testing.T) {
	svc := newDashboardFixture(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/status"):
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"message":"router unreachable"}`))
		case strings.HasSuffix(r.URL.Path, "/bandwidth"):
			w.Write([]byte(`[{"timestamp":"2024-01-01T10:00:00Z","avg_down_mbps":12}]`))
		case strings.HasSuffix(r.URL.Path, "/top-users"):
			w.Write([]byte(`[{"mac":"AA:BB","download_bytes":1024}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	svc.SetRouterId(context.Background(), 1)

	snap := svc.Snapshot()
	if snap.Status.Err != "router unreachable" {
		t.Errorf("status err = %q", snap.Status.Err)
	}
	if snap.Status.HasData {
		t.Error("failed source should carry no data yet")
	}
	if !snap.Bandwidth.HasData || len(snap.Bandwidth.Data) != 1 {
		t.Errorf("bandwidth snapshot = %+v", snap.Bandwidth)
	}
	if !snap.TopUsers.HasData || len(snap.TopUsers.Data) != 1 {
		t.Errorf("top users snapshot = %+v", snap.TopUsers)
	}
}

func TestSetRouterIdRekeysAllSources(t *testing.T) {
	// The three sources refresh concurrently, so the recorded paths are
	// guarded against simultaneous handler goroutines.
	var mu sync.Mutex
	var paths []string
	svc := newDashboardFixture(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		if strings.HasSuffix(r.URL.Path, "/status") {
			w.Write([]byte(`{"cpu_percent":1,"memory_percent":2}`))
			return
		}
		w.Write([]byte(`[]`))
	})

	takePaths := func() []string {
		mu.Lock()
		defer mu.Unlock()
		out := paths
		paths = nil
		return out
	}

	svc.SetRouterId(context.Background(), 1)
	takePaths()

	svc.SetRouterId(context.Background(), 5)
	got := takePaths()
	if len(got) != 3 {
		t.Fatalf("expected 3 refetches after router switch, got %v", got)
	}
	for _, p := range got {
		if !strings.Contains(p, "/routers/5/") {
			t.Errorf("fetch still scoped to old router: %s", p)
		}
	}

	// Same id again must not drop or refetch anything.
	svc.SetRouterId(context.Background(), 5)
	if got := takePaths(); len(got) != 0 {
		t.Errorf("unchanged router id triggered fetches: %v", got)
	}
	if snap := svc.Snapshot(); !snap.Status.HasData {
		t.Error("snapshot lost data on no-op router set")
	}
}

func TestAnalyticsCachedPerFilterWindow(t *testing.T) {
	hits := 0
	svc := newDashboardFixture(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"total_revenue":100,"days":[]}`))
	})
	svc.SetFilter(billing.DateFilter{Kind: billing.FilterPreset, Preset: billing.PresetToday})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		report, err := svc.Analytics(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if report.TotalRevenue != 100 {
			t.Errorf("revenue = %v", report.TotalRevenue)
		}
	}
	if hits != 1 {
		t.Errorf("upstream hit %d times for one window, expected 1", hits)
	}

	if err := svc.SetFilter(billing.DateFilter{Kind: billing.FilterRolling, Days: 7}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Analytics(ctx); err != nil {
		t.Fatal(err)
	}
	if hits != 2 {
		t.Errorf("filter change should fetch a fresh window, hits = %d", hits)
	}
}

func TestRefreshAllDropsCachedAnalytics(t *testing.T) {
	var mu sync.Mutex
	revenue := 100
	svc := newDashboardFixture(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, `{"total_revenue":%d,"days":[]}`, revenue)
	})

	ctx := context.Background()
	report, err := svc.Analytics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalRevenue != 100 {
		t.Fatalf("revenue = %v", report.TotalRevenue)
	}

	mu.Lock()
	revenue = 250
	mu.Unlock()

	// Without a refresh the window is still cached.
	if report, err = svc.Analytics(ctx); err != nil {
		t.Fatal(err)
	}
	if report.TotalRevenue != 100 {
		t.Fatalf("expected cached report before refresh, revenue = %v", report.TotalRevenue)
	}

	svc.RefreshAll(ctx)
	if report, err = svc.Analytics(ctx); err != nil {
		t.Fatal(err)
	}
	if report.TotalRevenue != 250 {
		t.Errorf("refresh served the stale cached report: revenue = %v", report.TotalRevenue)
	}
}

func TestSetFilterRejectsInvalid(t *testing.T) {
	svc := newDashboardFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	if err := svc.SetFilter(billing.DateFilter{Kind: billing.FilterRolling}); err == nil {
		t.Fatal("expected error for zero-day rolling window")
	}
	if got := svc.Filter(); got.Kind != billing.FilterPreset {
		t.Errorf("invalid filter replaced the current one: %+v", got)
	}
}
