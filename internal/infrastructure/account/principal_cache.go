package account

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/NachoSamo/SamoScore/internal/domain/user"
)

type cacheEntry struct {
	principal user.Principal
	expiresAt time.Time
}

type principalCache struct {
	mu         sync.RWMutex
	clock      clockwork.Clock
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
}

func newPrincipalCache(ttl time.Duration, maxEntries int, clock clockwork.Clock) *principalCache {
	return &principalCache{
		clock:      clock,
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

func (c *principalCache) Get(key string) (user.Principal, bool) {
	now := c.clock.Now()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return user.Principal{}, false
	}
	if !entry.expiresAt.After(now) {
		c.Delete(key)
		return user.Principal{}, false
	}

	return entry.principal, true
}

// Set never keeps a principal past expiresAt, the session's own expiry.
func (c *principalCache) Set(key string, principal user.Principal, expiresAt time.Time) {
	if c.ttl <= 0 {
		return
	}

	now := c.clock.Now()
	until := now.Add(c.ttl)
	if !expiresAt.IsZero() && expiresAt.Before(until) {
		until = expiresAt
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictExpired(now)
		if len(c.entries) >= c.maxEntries {
			c.evictOne()
		}
	}

	c.entries[key] = cacheEntry{principal: principal, expiresAt: until}
}

func (c *principalCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *principalCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *principalCache) evictExpired(now time.Time) {
	for key, entry := range c.entries {
		if !entry.expiresAt.After(now) {
			delete(c.entries, key)
		}
	}
}

func (c *principalCache) evictOne() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}
