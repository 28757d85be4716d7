package reportcache

import (
	"context"
	"sync"
	"time"

	"github.com/campuswatt/campus-energy/internal/domain/dashboard"
)

// MemoryCache is an in-process ReportCache used for tests/dev.
type MemoryCache struct {
	mu        sync.RWMutex
	report    dashboard.Report
	hasReport bool
	expiresAt time.Time
	now       func() time.Time
}

// NewMemoryCache constructs an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{now: time.Now}
}

func (c *MemoryCache) GetReport(_ context.Context) (dashboard.Report, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.hasReport {
		return dashboard.Report{}, false, nil
	}
	if !c.expiresAt.IsZero() && c.now().After(c.expiresAt) {
		return dashboard.Report{}, false, nil
	}
	return c.report, true, nil
}

func (c *MemoryCache) SaveReport(_ context.Context, report dashboard.Report, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report = report
	c.hasReport = true
	if ttl > 0 {
		c.expiresAt = c.now().Add(ttl)
	} else {
		c.expiresAt = time.Time{}
	}
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasReport = false
	return nil
}

var _ dashboard.ReportCache = (*MemoryCache)(nil)
