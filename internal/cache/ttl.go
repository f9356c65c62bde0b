// Package cache holds decoded entity collections for a short time so repeated
// reads skip the decode step.
package cache

import (
	"slices"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/julianstephens/mindflow/internal/clock"
)

// State of a cached collection.
type State int

const (
	StateEmpty State = iota
	StateFilled
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateFilled:
		return "filled"
	case StateExpired:
		return "expired"
	default:
		return "empty"
	}
}

const snapshotKey = "snapshot"

type snapshot[T any] struct {
	items    []T
	filledAt time.Time
}

// TTL caches one collection. A snapshot goes stale once now - filledAt >= ttl,
// measured on the injected clock. Values handed in or out are copied, so the
// cache never shares backing arrays with callers.
type TTL[T any] struct {
	ttl   time.Duration
	clock clock.Clock
	clone func([]T) []T
	store *ttlcache.Cache[string, snapshot[T]]

	mu     sync.Mutex
	filled bool // a snapshot was stored since the last Clear
}

// New creates an empty cache. clone deep-copies a collection; nil means a
// shallow slice copy.
func New[T any](ttl time.Duration, c clock.Clock, clone func([]T) []T) *TTL[T] {
	if clone == nil {
		clone = func(items []T) []T { return slices.Clone(items) }
	}
	return &TTL[T]{
		ttl:   ttl,
		clock: clock.Or(c),
		clone: clone,
		store: ttlcache.New(
			ttlcache.WithTTL[string, snapshot[T]](ttl),
			ttlcache.WithDisableTouchOnHit[string, snapshot[T]](),
		),
	}
}

func (c *TTL[T]) stale(s snapshot[T]) bool {
	return c.clock.Now().Sub(s.filledAt) >= c.ttl
}

// Get returns the cached collection while it is fresh. A stale snapshot is
// dropped on the way out.
func (c *TTL[T]) Get() ([]T, bool) {
	item := c.store.Get(snapshotKey)
	if item == nil {
		return nil, false
	}
	s := item.Value()
	if c.stale(s) {
		c.store.Delete(snapshotKey)
		return nil, false
	}
	return c.copyOut(s.items), true
}

// GetOrLoad returns the fresh snapshot or refills it from load. Concurrent
// misses may each call load; the last one stored wins.
func (c *TTL[T]) GetOrLoad(load func() []T) []T {
	if items, ok := c.Get(); ok {
		return items
	}
	loader := ttlcache.LoaderFunc[string, snapshot[T]](
		func(_ *ttlcache.Cache[string, snapshot[T]], _ string) *ttlcache.Item[string, snapshot[T]] {
			return c.set(load())
		},
	)
	item := c.store.Get(snapshotKey, ttlcache.WithLoader[string, snapshot[T]](loader))
	return c.copyOut(item.Value().items)
}

// Set stores items as the current snapshot, stamped now.
func (c *TTL[T]) Set(items []T) {
	c.set(items)
}

func (c *TTL[T]) set(items []T) *ttlcache.Item[string, snapshot[T]] {
	c.mu.Lock()
	c.filled = true
	c.mu.Unlock()
	return c.store.Set(snapshotKey, snapshot[T]{
		items:    c.copyOut(items),
		filledAt: c.clock.Now(),
	}, ttlcache.DefaultTTL)
}

// Clear drops the snapshot and returns the cache to StateEmpty.
func (c *TTL[T]) Clear() {
	c.mu.Lock()
	c.filled = false
	c.mu.Unlock()
	c.store.DeleteAll()
}

// State reports where the cache sits without changing it.
func (c *TTL[T]) State() State {
	c.mu.Lock()
	filled := c.filled
	c.mu.Unlock()
	if !filled {
		return StateEmpty
	}
	item := c.store.Get(snapshotKey)
	if item == nil || c.stale(item.Value()) {
		return StateExpired
	}
	return StateFilled
}

func (c *TTL[T]) copyOut(items []T) []T {
	out := c.clone(items)
	if out == nil {
		out = []T{}
	}
	return out
}
