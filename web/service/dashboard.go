package service

import (
	"context"
	"sync"
	"time"

	"github.com/netpesa/netpesa/billing"
	"github.com/netpesa/netpesa/util/common"
	"github.com/netpesa/netpesa/web/poller"

	"github.com/patrickmn/go-cache"
)

const (
	bandwidthWindowHours = 24
	topUsersLimit        = 10

	analyticsTTL = time.Minute
)

// DashboardData is the aggregate snapshot served to the dashboard page.
// Each source carries its own error so one failed upstream call degrades
// only its card.
type DashboardData struct {
	RouterId  int                                         `json:"routerId"`
	Filter    billing.DateFilter                          `json:"filter"`
	Status    poller.Snapshot[*billing.RouterStatus]      `json:"status"`
	Bandwidth poller.Snapshot[[]billing.BandwidthPoint]   `json:"bandwidth"`
	TopUsers  poller.Snapshot[[]billing.TopUser]          `json:"topUsers"`
}

// DashboardService aggregates the four dashboard sources. Telemetry,
// bandwidth history and top users poll on their own intervals; analytics
// is fetched on demand and cached per filter window.
type DashboardService struct {
	mu       sync.RWMutex
	routerId int
	filter   billing.DateFilter

	status    *poller.Resource[*billing.RouterStatus]
	bandwidth *poller.Resource[[]billing.BandwidthPoint]
	topUsers  *poller.Resource[[]billing.TopUser]

	analytics *cache.Cache
}

func NewDashboardService() *DashboardService {
	s := &DashboardService{
		filter:    billing.DefaultDateFilter(),
		analytics: cache.New(analyticsTTL, 5*time.Minute),
	}

	s.status = poller.NewResource("router-status", 10*time.Second,
		func(ctx context.Context) (*billing.RouterStatus, error) {
			client, routerId, err := s.target()
			if err != nil {
				return nil, err
			}
			return client.RouterStatus(ctx, routerId)
		})

	s.bandwidth = poller.NewResource("bandwidth-history", 15*time.Second,
		func(ctx context.Context) ([]billing.BandwidthPoint, error) {
			client, routerId, err := s.target()
			if err != nil {
				return nil, err
			}
			return client.BandwidthHistory(ctx, routerId, bandwidthWindowHours)
		})

	s.topUsers = poller.NewResource("top-users", 10*time.Second,
		func(ctx context.Context) ([]billing.TopUser, error) {
			client, routerId, err := s.target()
			if err != nil {
				return nil, err
			}
			return client.TopUsers(ctx, routerId, topUsersLimit)
		})

	return s
}

// target resolves the client and selected router for one fetch. Reading
// both under one lock keeps a fetch from mixing routers mid-switch.
func (s *DashboardService) target() (*billing.Client, int, error) {
	s.mu.RLock()
	routerId := s.routerId
	s.mu.RUnlock()

	if routerId == 0 {
		return nil, 0, common.NewError("no router selected")
	}
	client, err := BillingAPI()
	if err != nil {
		return nil, 0, err
	}
	return client, routerId, nil
}

// PollJob pairs a polling resource with its cron spec.
type PollJob struct {
	Spec string
	Job  interface{ Run() }
}

// Jobs returns the polling resources with their cron specs for the web
// server to schedule.
func (s *DashboardService) Jobs() []PollJob {
	return []PollJob{
		{Spec: "@every 30s", Job: s.status},
		{Spec: "@every 60s", Job: s.bandwidth},
		{Spec: "@every 30s", Job: s.topUsers},
	}
}

// RouterId returns the currently selected router, 0 when none.
func (s *DashboardService) RouterId() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.routerId
}

// SetRouterId switches every source to the new router. Cached data for
// the old router is dropped immediately so a stale snapshot can never be
// served against the new selection, then all sources refresh.
func (s *DashboardService) SetRouterId(ctx context.Context, routerId int) {
	s.mu.Lock()
	changed := s.routerId != routerId
	s.routerId = routerId
	s.mu.Unlock()

	if !changed {
		return
	}

	s.status.Reset()
	s.bandwidth.Reset()
	s.topUsers.Reset()
	s.RefreshAll(ctx)
}

// Filter returns the current analytics date filter.
func (s *DashboardService) Filter() billing.DateFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetFilter changes the analytics window. Only the analytics source is
// keyed by date; the polled sources keep their data untouched.
func (s *DashboardService) SetFilter(filter billing.DateFilter) error {
	if !filter.Valid() {
		return common.NewError("invalid date filter")
	}
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
	return nil
}

// RefreshAll re-invokes every source: the three polled ones concurrently,
// and analytics by dropping its cached windows so the next read fetches
// upstream. Each source records its own failure; this never returns an
// error because partial data is still data.
func (s *DashboardService) RefreshAll(ctx context.Context) {
	s.analytics.Flush()

	var wg sync.WaitGroup
	for _, r := range []interface{ Refresh(context.Context) }{s.status, s.bandwidth, s.topUsers} {
		wg.Add(1)
		go func(r interface{ Refresh(context.Context) }) {
			defer wg.Done()
			r.Refresh(ctx)
		}(r)
	}
	wg.Wait()
}

// Snapshot assembles the polled sources into one response.
func (s *DashboardService) Snapshot() *DashboardData {
	s.mu.RLock()
	routerId := s.routerId
	filter := s.filter
	s.mu.RUnlock()

	return &DashboardData{
		RouterId:  routerId,
		Filter:    filter,
		Status:    s.status.Snapshot(),
		Bandwidth: s.bandwidth.Snapshot(),
		TopUsers:  s.topUsers.Snapshot(),
	}
}

// Analytics returns the aggregate report for the current filter and
// router, fetching from upstream only when the cached window expired.
// Repeating the same filter within the TTL is served from cache, and a
// fresh fetch for an unchanged window replaces the entry in place.
func (s *DashboardService) Analytics(ctx context.Context) (*billing.Analytics, error) {
	s.mu.RLock()
	params := billing.AnalyticsParams{Filter: s.filter, RouterId: s.routerId}
	s.mu.RUnlock()

	key := params.Key()
	if cached, ok := s.analytics.Get(key); ok {
		return cached.(*billing.Analytics), nil
	}

	client, err := BillingAPI()
	if err != nil {
		return nil, err
	}
	report, err := client.GetAnalytics(ctx, params)
	if err != nil {
		return nil, err
	}
	s.analytics.SetDefault(key, report)
	return report, nil
}
