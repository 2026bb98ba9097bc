package status

import (
	"sync"
	"time"
)

// DefaultTTL is how long a computed roster status stays valid.
const DefaultTTL = 30 * time.Second

// Cache holds the last roster-wide status list for a fixed time window.
// The lock is held across check, recompute and store so concurrent readers
// wait for a single recomputation instead of each running their own.
type Cache struct {
	mu         sync.Mutex
	value      []AgentStatus
	computedAt time.Time
	ttl        time.Duration
	now        func() time.Time
}

// NewCache creates a cache with the given ttl and clock. A nil clock uses time.Now.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{ttl: ttl, now: now}
}

// Get returns the cached list while it is fresh and non-empty; otherwise it
// calls compute and stores the result, stamped with the time the
// recomputation started. compute reports whether its result is
// complete; incomplete results are returned but not stored.
func (c *Cache) Get(compute func() ([]AgentStatus, bool)) []AgentStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if len(c.value) > 0 && now.Sub(c.computedAt) < c.ttl {
		return cloneStatuses(c.value)
	}

	value, complete := compute()
	if complete {
		c.value = cloneStatuses(value)
		c.computedAt = now
	}
	return value
}

// ComputedAt returns when the cached value was stored, and false if the slot is empty.
func (c *Cache) ComputedAt() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil {
		return time.Time{}, false
	}
	return c.computedAt, true
}

// Invalidate empties the slot so the next Get recomputes.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.computedAt = time.Time{}
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}
