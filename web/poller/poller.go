// Package poller provides the shared polling primitive behind every
// dashboard data source. Each Resource owns one fetch function and caches
// the latest result alongside the error and refresh time, so all sources
// expose the same triple instead of hand-rolled per-source state.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/netpesa/netpesa/logger"
	"github.com/netpesa/netpesa/util/common"

	"go.uber.org/atomic"
)

// Snapshot is the cached state of one resource. Data holds the last
// successful fetch even when Err is set, so a transient upstream failure
// degrades to stale data instead of a blank screen.
type Snapshot[T any] struct {
	Data        T         `json:"data"`
	Err         string    `json:"error,omitempty"`
	LastRefresh time.Time `json:"lastRefresh"`
	HasData     bool      `json:"hasData"`
}

// FetchFunc loads one fresh value from the upstream.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Resource periodically refreshes one value. It implements cron.Job.
type Resource[T any] struct {
	name    string
	fetch   FetchFunc[T]
	timeout time.Duration

	refreshing atomic.Bool

	mu          sync.RWMutex
	data        T
	err         error
	lastRefresh time.Time
	hasData     bool
}

// NewResource builds a resource around fetch. The timeout bounds each
// refresh so one hung upstream call cannot wedge the scheduler slot.
func NewResource[T any](name string, timeout time.Duration, fetch FetchFunc[T]) *Resource[T] {
	return &Resource[T]{
		name:    name,
		fetch:   fetch,
		timeout: timeout,
	}
}

// Run satisfies cron.Job.
func (r *Resource[T]) Run() {
	r.Refresh(context.Background())
}

// Refresh fetches a fresh value. Overlapping calls collapse: if a refresh
// is already in flight the second caller returns immediately and keeps the
// current snapshot.
func (r *Resource[T]) Refresh(ctx context.Context) {
	defer common.Recover("poll " + r.name)

	if !r.refreshing.CompareAndSwap(false, true) {
		return
	}
	defer r.refreshing.Store(false)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	data, err := r.fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastRefresh = time.Now()
	if err != nil {
		// Keep the previous data so the view degrades to stale, not empty.
		r.err = err
		logger.Warningf("poll %s failed: %v", r.name, err)
		return
	}
	r.data = data
	r.err = nil
	r.hasData = true
}

// Snapshot returns the current cached state.
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Snapshot[T]{
		Data:        r.data,
		LastRefresh: r.lastRefresh,
		HasData:     r.hasData,
	}
	if r.err != nil {
		s.Err = r.err.Error()
	}
	return s
}

// Reset drops the cached value and error, for when the fetch function's
// inputs change and the old data no longer answers the current question.
func (r *Resource[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	r.data = zero
	r.err = nil
	r.hasData = false
	r.lastRefresh = time.Time{}
}
