package cache

import (
	"catalog-engine/internal/models"
	"context"
	"sync"
	"time"
)

// DefaultTTL bounds how stale a cached facet summary may get
const DefaultTTL = 5 * time.Minute

// FacetCache holds the latest facet summary. A miss is reported as ok=false
// with a nil error; an error means the cache itself failed.
type FacetCache interface {
	Get(ctx context.Context) (summary models.FacetSummary, ok bool, err error)
	Set(ctx context.Context, summary models.FacetSummary) error
	Invalidate(ctx context.Context) error
}

type entry struct {
	summary   models.FacetSummary
	fetchedAt time.Time
}

// MemoryCache is an in-process FacetCache. A non-positive TTL disables it.
type MemoryCache struct {
	mu    sync.RWMutex
	entry *entry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryCache creates a MemoryCache with the given TTL
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: time.Now}
}

// Get returns a copy of the cached summary while it is younger than the TTL
func (c *MemoryCache) Get(_ context.Context) (models.FacetSummary, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry != nil && c.now().Sub(c.entry.fetchedAt) < c.ttl {
		return c.entry.summary.Clone(), true, nil
	}
	return models.FacetSummary{}, false, nil
}

// Set replaces the cached summary
func (c *MemoryCache) Set(_ context.Context, summary models.FacetSummary) error {
	if c.ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = &entry{summary: summary.Clone(), fetchedAt: c.now()}
	return nil
}

// Invalidate drops the cached summary
func (c *MemoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
	return nil
}
