// Package cache provides the process-local TTL caches used by the fetch
// pipeline. Entries expire lazily on lookup; no janitor goroutine runs.
package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// TTL is a lookup-or-compute cache with a single time-to-live.
type TTL[V any] struct {
	name  string
	items *ttlcache.Cache[string, V]

	// OnHit and OnMiss are optional hooks for metrics.
	OnHit  func(name string)
	OnMiss func(name string)
}

// New creates a cache whose entries live for ttl. Reads do not extend an
// entry's lifetime.
func New[V any](name string, ttl time.Duration) *TTL[V] {
	return &TTL[V]{
		name: name,
		items: ttlcache.New[string, V](
			ttlcache.WithTTL[string, V](ttl),
			ttlcache.WithDisableTouchOnHit[string, V](),
		),
	}
}

// Name returns the cache name.
func (c *TTL[V]) Name() string { return c.name }

// Get returns a live entry.
func (c *TTL[V]) Get(key string) (V, bool) {
	item := c.items.Get(key)
	if item == nil {
		var zero V
		return zero, false
	}
	return item.Value(), true
}

// Set stores value under key for the cache TTL.
func (c *TTL[V]) Set(key string, value V) {
	c.items.Set(key, value, ttlcache.DefaultTTL)
}

// GetOrCompute returns the cached value for key or computes and stores it.
// A compute error is returned as-is and nothing is stored.
func (c *TTL[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	var (
		loaded bool
		err    error
	)
	loader := ttlcache.LoaderFunc[string, V](func(tc *ttlcache.Cache[string, V], k string) *ttlcache.Item[string, V] {
		loaded = true
		v, cerr := compute()
		if cerr != nil {
			err = cerr
			return nil
		}
		return tc.Set(k, v, ttlcache.DefaultTTL)
	})

	item := c.items.Get(key, ttlcache.WithLoader[string, V](loader))
	if loaded {
		if c.OnMiss != nil {
			c.OnMiss(c.name)
		}
	} else if c.OnHit != nil {
		c.OnHit(c.name)
	}

	if err != nil || item == nil {
		var zero V
		return zero, err
	}
	return item.Value(), nil
}

// Clear drops every entry.
func (c *TTL[V]) Clear() { c.items.DeleteAll() }

// Len counts stored entries.
func (c *TTL[V]) Len() int { return c.items.Len() }

// Key joins a function identity and its arguments into a cache key.
func Key(fn string, args ...any) string {
	var b strings.Builder
	b.WriteString(fn)
	for _, a := range args {
		b.WriteByte('|')
		fmt.Fprint(&b, a)
	}
	return b.String()
}

// Clearer is anything that can be flushed by a full refresh.
type Clearer interface {
	Clear()
}
