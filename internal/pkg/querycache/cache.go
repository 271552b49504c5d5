// internal/pkg/querycache/cache.go
package querycache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Key addresses one cached query: the entity it lists and its parameters.
type Key struct {
	Entity string
	Params string
}

func (k Key) String() string {
	return k.Entity + "|" + k.Params
}

type entry struct {
	value     interface{}
	fetchedAt time.Time
	stale     bool
}

// Cache deduplicates concurrent identical queries and keeps the last value of
// every key for stale-while-revalidate reads.
type Cache struct {
	staleTime time.Duration
	now       func() time.Time
	group     singleflight.Group

	mu      sync.Mutex
	entries map[Key]*entry
	gens    map[string]uint64
}

// New returns a cache whose entries stay fresh for staleTime. Zero means
// every Fetch goes to the network, sharing only concurrent calls.
func New(staleTime time.Duration) *Cache {
	return &Cache{
		staleTime: staleTime,
		now:       time.Now,
		entries:   make(map[Key]*entry),
		gens:      make(map[string]uint64),
	}
}

// Fetch returns the fresh entry for key or runs fn once for all concurrent
// callers. fn runs detached from the caller's cancellation so an abandoned
// screen still populates the cache.
func (c *Cache) Fetch(ctx context.Context, key Key, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.freshLocked(e) {
		v := e.value
		c.mu.Unlock()
		return v, nil
	}
	gen := c.gens[key.Entity]
	c.mu.Unlock()

	detached := context.WithoutCancel(ctx)
	// The generation is part of the flight key: a fetch started after an
	// invalidation never joins one started before it.
	ch := c.group.DoChan(fmt.Sprintf("%s#%d", key, gen), func() (interface{}, error) {
		v, err := fn(detached)
		if err != nil {
			return nil, err
		}
		c.store(key, v, gen)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

// Peek returns the last value stored for key, fresh or not.
func (c *Cache) Peek(key Key) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Invalidate marks every entry of entity stale so the next read refetches.
func (c *Cache) Invalidate(entity string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[entity]++
	for k, e := range c.entries {
		if k.Entity == entity {
			e.stale = true
		}
	}
}

// Remove drops the entries of entity, used when the session ends.
func (c *Cache) Remove(entity string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[entity]++
	for k := range c.entries {
		if k.Entity == entity {
			delete(c.entries, k)
		}
	}
}

// Clear drops everything.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	entities := make(map[string]struct{}, len(c.gens))
	for entity := range c.gens {
		entities[entity] = struct{}{}
	}
	for k := range c.entries {
		entities[k.Entity] = struct{}{}
	}
	for entity := range entities {
		c.gens[entity]++
	}
	c.entries = make(map[Key]*entry)
}

func (c *Cache) store(key Key, v interface{}, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry{
		value:     v,
		fetchedAt: c.now(),
		stale:     gen != c.gens[key.Entity],
	}
}

func (c *Cache) freshLocked(e *entry) bool {
	if e.stale || c.staleTime <= 0 {
		return false
	}
	return c.now().Sub(e.fetchedAt) < c.staleTime
}

// Get is the typed form of Fetch.
func Get[T any](ctx context.Context, c *Cache, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cached value for %s has type %T", key, v)
	}
	return typed, nil
}

// PeekAs is the typed form of Peek.
func PeekAs[T any](c *Cache, key Key) (T, bool) {
	var zero T
	v, ok := c.Peek(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}
