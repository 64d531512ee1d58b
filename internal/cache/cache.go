// Package cache holds the process-wide standings snapshot and throttles upstream refreshes.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/pfrederiksen/curling-standings/internal/logger"
	"github.com/pfrederiksen/curling-standings/internal/standings"
)

// DefaultInterval is the minimum time between upstream refreshes
const DefaultInterval = 30 * time.Second

// RefreshTimeout bounds one shared refresh. It covers the parallel fetches, each of which
// has its own 30s client timeout.
const RefreshTimeout = 45 * time.Second

// Refresher builds a fresh snapshot. Implemented by *feed.Feed.
type Refresher interface {
	Refresh(ctx context.Context) (standings.Snapshot, error)
}

// Cache serves the last snapshot until it is older than the interval
type Cache struct {
	refresher Refresher
	interval  time.Duration
	clock     clockwork.Clock

	mu          sync.RWMutex
	snapshot    standings.Snapshot
	lastRefresh time.Time

	group singleflight.Group
}

// New creates an empty cache. interval <= 0 means DefaultInterval; a nil clock means
// the real clock.
func New(refresher Refresher, interval time.Duration, clock clockwork.Clock) *Cache {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		refresher: refresher,
		interval:  interval,
		clock:     clock,
	}
}

// Get returns the cached snapshot if it is populated and younger than the interval,
// otherwise refreshes it. Concurrent callers share a single in-flight refresh.
func (c *Cache) Get(ctx context.Context) (standings.Snapshot, error) {
	if snap, ok := c.fresh(); ok {
		logger.IncrCounter("cache.hit")
		return snap, nil
	}
	return c.Refresh(ctx)
}

// Refresh replaces the snapshot regardless of its age. The shared refresh does not
// inherit ctx cancellation; a caller whose ctx ends stops waiting without failing the
// other callers.
func (c *Cache) Refresh(ctx context.Context) (standings.Snapshot, error) {
	ch := c.group.DoChan("refresh", func() (interface{}, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), RefreshTimeout)
		defer cancel()
		return c.refresh(rctx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return standings.Snapshot{}, res.Err
		}
		return res.Val.(standings.Snapshot), nil
	case <-ctx.Done():
		return standings.Snapshot{}, ctx.Err()
	}
}

// Peek returns the current snapshot without refreshing
func (c *Cache) Peek() standings.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

func (c *Cache) fresh() (standings.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.snapshot.Populated() || c.lastRefresh.IsZero() {
		return standings.Snapshot{}, false
	}
	if c.clock.Since(c.lastRefresh) >= c.interval {
		return standings.Snapshot{}, false
	}
	return c.snapshot, true
}

func (c *Cache) refresh(ctx context.Context) (standings.Snapshot, error) {
	started := c.clock.Now()

	snap, err := c.refresher.Refresh(ctx)
	if err != nil {
		logger.Error("standings refresh failed", nil, err)
		return standings.Snapshot{}, err
	}

	c.mu.Lock()
	c.snapshot = snap
	c.lastRefresh = started
	c.mu.Unlock()

	logger.IncrCounter("cache.refresh")
	logger.Info("standings refreshed", logger.Fields{
		"men":      len(snap.Men),
		"women":    len(snap.Women),
		"upcoming": len(snap.Upcoming),
	})
	return snap, nil
}
