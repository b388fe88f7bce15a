// Package cache holds the in-process layer in front of the sports data
// provider.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

const (
	// sweepThreshold is the entry count above which a write also evicts
	// every expired entry.
	sweepThreshold = 512
	// loadTimeout bounds a shared load once it no longer follows the
	// context of the caller that started it.
	loadTimeout = 30 * time.Second
)

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) live(now time.Time) bool {
	return e.expiresAt.IsZero() || e.expiresAt.After(now)
}

// Loader fetches a value on a miss and picks how long it stays fresh.
// A non-positive TTL falls back to the store default.
type Loader func(ctx context.Context) (value any, ttl time.Duration, err error)

// Store is a TTL map where concurrent misses on one key share a single load.
// Failed loads are never cached.
type Store struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu      sync.RWMutex
	entries map[string]entry
	flight  singleflight.Group
}

func NewStore(ttl time.Duration) *Store {
	return NewStoreWithClock(ttl, clockwork.NewRealClock())
}

func NewStoreWithClock(ttl time.Duration, clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{ttl: ttl, clock: clock, entries: make(map[string]entry)}
}

func (s *Store) lookup(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || !e.live(s.clock.Now()) {
		return nil, false
	}
	return e.value, true
}

func (s *Store) store(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := s.clock.Now()
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = now.Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) >= sweepThreshold {
		for k, e := range s.entries {
			if !e.live(now) {
				delete(s.entries, k)
			}
		}
	}
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
}

// GetOrLoadWithTTL returns the cached value for key or runs load once for
// all concurrent callers. An empty key bypasses the cache.
//
// The shared load runs detached from any single caller: a caller whose
// context ends stops waiting and gets its context error, while the load
// keeps going for the others and still fills the cache.
func (s *Store) GetOrLoadWithTTL(ctx context.Context, key string, load Loader) (any, error) {
	if load == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		value, _, err := load(ctx)
		return value, err
	}
	if value, ok := s.lookup(key); ok {
		return value, nil
	}

	results := s.flight.DoChan(key, func() (any, error) {
		if value, ok := s.lookup(key); ok {
			return value, nil
		}
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		value, ttl, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		s.store(key, value, ttl)
		return value, nil
	})

	select {
	case res := <-results:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len counts entries including expired ones not yet swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
