package cache

import (
	"context"
	"time"
)

// DefaultTTL is applied by Set and GetOrCompute when no explicit TTL is given
const DefaultTTL = 60 * time.Second

// ComputeFunc produces a value on a cache miss. The context is the caller's, passed through untouched.
type ComputeFunc func(ctx context.Context) (interface{}, error)

// Service defines the interface for the in-process TTL cache.
// External packages should use this interface, not the concrete implementation.
//
// Reads treat an entry as absent once its TTL has elapsed, whether or not it
// has been physically removed yet. Only the GetOrCompute family can fail, and
// only with the error returned by the compute function.
type Service interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	SetWithTTL(key string, value interface{}, ttl time.Duration)
	Delete(key string) bool
	DeleteByPrefix(prefix string) int
	Clear()
	Size() int
	Cleanup() int
	DefaultTTL() time.Duration

	// GetOrCompute does not serialize concurrent misses for the same key:
	// each caller may run fn and store its own result, last write wins.
	GetOrCompute(ctx context.Context, key string, fn ComputeFunc) (interface{}, error)
	GetOrComputeWithTTL(ctx context.Context, key string, fn ComputeFunc, ttl time.Duration) (interface{}, error)

	// GetOrComputeShared runs at most one fn per key at a time; concurrent
	// callers wait for it and share its value or error.
	GetOrComputeShared(ctx context.Context, key string, fn ComputeFunc) (interface{}, error)
	GetOrComputeSharedWithTTL(ctx context.Context, key string, fn ComputeFunc, ttl time.Duration) (interface{}, error)
}

// Sweepable is the part of the cache the periodic sweeper drives
type Sweepable interface {
	Cleanup() int
	Size() int
}
