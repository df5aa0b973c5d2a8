package oracle

import (
	"sync"
	"time"
)

// entry is a cached domain-age fact.
type entry struct {
	// age is the memoized lookup result.
	age Age

	// insertedAt is when the entry was stored, per the cache's clock.
	insertedAt time.Time
}

// ttlCache is a hostname-keyed cache with fixed time-to-live eviction.
//
// Eviction is lazy: expired entries are detected on read and overwritten on
// the next store. There is no background sweeper because the working set is
// bounded by the number of distinct hostnames a user visits within one TTL.
type ttlCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	// now returns the current time. Injected for deterministic expiry tests.
	now func() time.Time
}

// newTTLCache creates a cache with the given TTL and clock.
func newTTLCache(ttl time.Duration, now func() time.Time) *ttlCache {
	if now == nil {
		now = time.Now
	}
	return &ttlCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     now,
	}
}

// get returns the cached age for hostname if present and not expired.
func (c *ttlCache) get(hostname string) (Age, bool) {
	c.mu.RLock()
	e, ok := c.entries[hostname]
	c.mu.RUnlock()

	if !ok {
		return Age{}, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		return Age{}, false
	}
	return e.age, true
}

// put stores the age for hostname, overwriting any existing entry.
func (c *ttlCache) put(hostname string, age Age) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[hostname] = entry{age: age, insertedAt: c.now()}
}
