package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"OrgSettings/internal/models"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/singleflight"
)

// MemoryCache implements Service using in-memory storage
type MemoryCache struct {
	data       map[string]*cacheEntry
	mutex      sync.RWMutex
	clock      clock.Clock
	defaultTTL time.Duration
	group      singleflight.Group
}

// cacheEntry represents a single cache entry with expiration
type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// expired reports whether the entry is logically absent at now
func (e *cacheEntry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// Option configures a MemoryCache
type Option func(*MemoryCache)

// WithClock sets the clock used to stamp and check expiry
func WithClock(clk clock.Clock) Option {
	return func(m *MemoryCache) {
		if clk != nil {
			m.clock = clk
		}
	}
}

// WithDefaultTTL overrides DefaultTTL for this cache
func WithDefaultTTL(ttl time.Duration) Option {
	return func(m *MemoryCache) {
		m.defaultTTL = ttl
	}
}

// NewMemoryCache creates a new in-memory cache.
// No background goroutine is started; run a Sweeper to reclaim expired entries.
func NewMemoryCache(opts ...Option) Service {
	return newMemoryCache(opts...)
}

// newMemoryCache creates the concrete implementation
func newMemoryCache(opts ...Option) *MemoryCache {
	cache := &MemoryCache{
		data:       make(map[string]*cacheEntry),
		clock:      clock.New(),
		defaultTTL: DefaultTTL,
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// Get retrieves a cached value for the given key
func (m *MemoryCache) Get(key string) (interface{}, bool) {
	now := m.clock.Now()

	m.mutex.RLock()
	entry, exists := m.data[key]
	if !exists {
		m.mutex.RUnlock()
		return nil, false
	}
	if !entry.expired(now) {
		value := entry.value
		m.mutex.RUnlock()
		return value, true
	}
	m.mutex.RUnlock()

	// Expired: take the write lock and drop it, unless it was replaced meanwhile
	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry, exists = m.data[key]
	if !exists {
		return nil, false
	}
	if entry.expired(now) {
		delete(m.data, key)
		return nil, false
	}
	return entry.value, true
}

// Set stores a value in the cache with the default TTL
func (m *MemoryCache) Set(key string, value interface{}) {
	m.SetWithTTL(key, value, m.defaultTTL)
}

// SetWithTTL stores a value in the cache with the specified TTL.
// A zero or negative TTL stores an entry that is already expired.
func (m *MemoryCache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	expiresAt := m.clock.Now().Add(ttl)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.data[key] = &cacheEntry{
		value:     value,
		expiresAt: expiresAt,
	}
}

// Delete removes an entry from the cache and reports whether it was held, expired or not
func (m *MemoryCache) Delete(key string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, exists := m.data[key]
	delete(m.data, key)
	return exists
}

// DeleteByPrefix removes every entry whose key starts with prefix and returns how many were removed
func (m *MemoryCache) DeleteByPrefix(prefix string) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	removed := 0
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			delete(m.data, key)
			removed++
		}
	}
	return removed
}

// Clear removes all entries
func (m *MemoryCache) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.data = make(map[string]*cacheEntry)
}

// Size returns the number of held entries, including expired ones not yet purged
func (m *MemoryCache) Size() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.data)
}

// Cleanup removes expired entries from the cache and returns how many were removed
func (m *MemoryCache) Cleanup() int {
	now := m.clock.Now()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	removed := 0
	for key, entry := range m.data {
		if entry.expired(now) {
			delete(m.data, key)
			removed++
		}
	}
	return removed
}

// DefaultTTL returns the TTL used when none is given
func (m *MemoryCache) DefaultTTL() time.Duration {
	return m.defaultTTL
}

// GetOrCompute returns the cached value or computes and caches it with the default TTL
func (m *MemoryCache) GetOrCompute(ctx context.Context, key string, fn ComputeFunc) (interface{}, error) {
	return m.GetOrComputeWithTTL(ctx, key, fn, m.defaultTTL)
}

// GetOrComputeWithTTL returns the cached value or computes and caches it with ttl.
// The check and the store are separate critical sections.
func (m *MemoryCache) GetOrComputeWithTTL(ctx context.Context, key string, fn ComputeFunc, ttl time.Duration) (interface{}, error) {
	if fn == nil {
		return nil, models.ErrNilComputeFunc
	}

	if value, ok := m.Get(key); ok {
		return value, nil
	}

	return m.compute(ctx, key, fn, ttl)
}

// GetOrComputeShared is GetOrCompute with at most one computation in flight per key
func (m *MemoryCache) GetOrComputeShared(ctx context.Context, key string, fn ComputeFunc) (interface{}, error) {
	return m.GetOrComputeSharedWithTTL(ctx, key, fn, m.defaultTTL)
}

// GetOrComputeSharedWithTTL is GetOrComputeWithTTL with at most one computation in flight per key.
// Waiters share the leader's result; fn receives the leader's context.
func (m *MemoryCache) GetOrComputeSharedWithTTL(ctx context.Context, key string, fn ComputeFunc, ttl time.Duration) (interface{}, error) {
	if fn == nil {
		return nil, models.ErrNilComputeFunc
	}

	if value, ok := m.Get(key); ok {
		return value, nil
	}

	value, err, _ := m.group.Do(key, func() (interface{}, error) {
		// A flight that finished just before this one may have stored the value
		if value, ok := m.Get(key); ok {
			return value, nil
		}
		return m.compute(ctx, key, fn, ttl)
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// compute runs fn and stores its result; nothing is stored on failure
func (m *MemoryCache) compute(ctx context.Context, key string, fn ComputeFunc, ttl time.Duration) (interface{}, error) {
	value, err := fn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute value for key %s: %w", key, err)
	}

	m.SetWithTTL(key, value, ttl)
	return value, nil
}
