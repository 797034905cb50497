package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"OrgSettings/internal/models"
)

// Typed is a per-call-site view of a shared Service that reads and writes
// values of a single type V under one key namespace.
type Typed[V any] struct {
	store     Service
	namespace string
	ttl       time.Duration
	hasTTL    bool
}

// NewTyped creates a typed view over store. Keys are written as "<namespace>:<id>".
func NewTyped[V any](store Service, namespace string) *Typed[V] {
	return &Typed[V]{
		store:     store,
		namespace: namespace,
	}
}

// WithTTL returns a copy that writes with ttl instead of the store default
func (t *Typed[V]) WithTTL(ttl time.Duration) *Typed[V] {
	c := *t
	c.ttl = ttl
	c.hasTTL = true
	return &c
}

// Key returns the store key for id
func (t *Typed[V]) Key(id string) string {
	if t.namespace == "" {
		return id
	}
	return t.namespace + ":" + id
}

// Get retrieves the value for id.
// It returns models.ErrCacheMiss when absent and a *models.TypeMismatchError
// when another call site stored a different type under the same key.
func (t *Typed[V]) Get(id string) (V, error) {
	var zero V

	key := t.Key(id)
	value, ok := t.store.Get(key)
	if !ok {
		return zero, models.ErrCacheMiss
	}
	return t.assert(key, value)
}

// Set stores v under id
func (t *Typed[V]) Set(id string, v V) {
	if t.hasTTL {
		t.store.SetWithTTL(t.Key(id), v, t.ttl)
		return
	}
	t.store.Set(t.Key(id), v)
}

// Delete removes id and reports whether it was held
func (t *Typed[V]) Delete(id string) bool {
	return t.store.Delete(t.Key(id))
}

// Invalidate removes every entry of the namespace
func (t *Typed[V]) Invalidate() int {
	if t.namespace == "" {
		return t.store.DeleteByPrefix("")
	}
	return t.store.DeleteByPrefix(t.namespace + ":")
}

// GetOrCompute returns the value for id, computing and caching it on a miss
func (t *Typed[V]) GetOrCompute(ctx context.Context, id string, fn func(ctx context.Context) (V, error)) (V, error) {
	return t.getOrCompute(ctx, id, fn, t.store.GetOrComputeWithTTL)
}

// GetOrComputeShared is GetOrCompute with at most one computation in flight per key
func (t *Typed[V]) GetOrComputeShared(ctx context.Context, id string, fn func(ctx context.Context) (V, error)) (V, error) {
	return t.getOrCompute(ctx, id, fn, t.store.GetOrComputeSharedWithTTL)
}

type computeWithTTL func(ctx context.Context, key string, fn ComputeFunc, ttl time.Duration) (interface{}, error)

func (t *Typed[V]) getOrCompute(ctx context.Context, id string, fn func(ctx context.Context) (V, error), do computeWithTTL) (V, error) {
	var zero V
	if fn == nil {
		return zero, models.ErrNilComputeFunc
	}

	ttl := t.store.DefaultTTL()
	if t.hasTTL {
		ttl = t.ttl
	}

	key := t.Key(id)
	value, err := do(ctx, key, func(ctx context.Context) (interface{}, error) {
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return v, nil
	}, ttl)
	if err != nil {
		return zero, err
	}
	return t.assert(key, value)
}

func (t *Typed[V]) assert(key string, value interface{}) (V, error) {
	var zero V
	if value == nil {
		// A nil interface{} is a valid V only when V is itself an interface type
		if any(zero) == nil {
			return zero, nil
		}
		want := strings.TrimPrefix(fmt.Sprintf("%T", new(V)), "*")
		return zero, models.NewTypeMismatchError(key, want, "<nil>")
	}

	v, ok := value.(V)
	if !ok {
		want := strings.TrimPrefix(fmt.Sprintf("%T", new(V)), "*")
		return zero, models.NewTypeMismatchError(key, want, fmt.Sprintf("%T", value))
	}
	return v, nil
}
