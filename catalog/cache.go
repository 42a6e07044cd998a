package catalog

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTTL is how long a scanned catalog is served before the next read
// rescans the posts root.
const DefaultTTL = 5 * time.Minute

// Cache holds the last successfully scanned catalog and rescans on demand once
// it is older than the TTL. There is no background refresh.
type Cache struct {
	mu      sync.RWMutex
	posts   Catalog
	fetched time.Time
	ttl     time.Duration
	scanner Scanner
	now     func() time.Time
	scans   atomic.Int64
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a Cache backed by scanner. The cache starts stale, so the
// first read scans.
func NewCache(scanner Scanner, ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{scanner: scanner, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) valid() bool {
	return c.posts != nil && c.now().Sub(c.fetched) < c.ttl
}

// Snapshot returns the current catalog, rescanning first if it is stale.
// Staleness check, scan and publish run under one write lock, so callers that
// pile up behind an in-flight scan reuse its result instead of scanning again.
// A failed scan keeps the previous catalog and returns the error.
func (c *Cache) Snapshot() (Catalog, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	c.scans.Add(1)
	posts, err := c.scanner.Scan()
	if err != nil {
		return nil, err
	}
	c.posts = posts
	c.fetched = c.now()
	return posts, nil
}

// LastRefreshed reports when the current catalog was scanned. It is the zero
// time until the first successful scan.
func (c *Cache) LastRefreshed() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetched
}

// Scans reports how many scans have been started, successful or not.
func (c *Cache) Scans() int64 {
	return c.scans.Load()
}
