package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agro/backend/internal/domain/report"
)

// InMemoryDashboardCache keeps the latest dashboard summary in process memory.
// Suitable for single-instance deployments and tests.
type InMemoryDashboardCache struct {
	mu        sync.RWMutex
	summary   *report.DashboardSummary
	expiresAt time.Time
	now       func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// NewInMemoryDashboardCache creates an empty in-memory cache
func NewInMemoryDashboardCache() *InMemoryDashboardCache {
	return &InMemoryDashboardCache{now: time.Now}
}

// Get returns the cached summary when present and not expired
func (c *InMemoryDashboardCache) Get(ctx context.Context) (*report.DashboardSummary, bool, error) {
	c.mu.RLock()
	summary, expiresAt := c.summary, c.expiresAt
	c.mu.RUnlock()

	if summary == nil || (!expiresAt.IsZero() && !c.now().Before(expiresAt)) {
		c.misses.Add(1)
		return nil, false, nil
	}
	c.hits.Add(1)
	return summary, true, nil
}

// Set stores summary for ttl. A zero ttl keeps it until the next Set or Delete.
func (c *InMemoryDashboardCache) Set(ctx context.Context, summary *report.DashboardSummary, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.summary = summary
	c.expiresAt = time.Time{}
	if ttl > 0 {
		c.expiresAt = c.now().Add(ttl)
	}
	return nil
}

// Delete drops the cached summary
func (c *InMemoryDashboardCache) Delete(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.summary = nil
	c.expiresAt = time.Time{}
	return nil
}

// Stats returns cache hit and miss counts
func (c *InMemoryDashboardCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
