package cache

import (
	"sync"
	"time"
)

// item is a stored value together with its absolute expiry instant.
// A zero expiry means the item never expires.
type item[V any] struct {
	val    V
	expiry time.Time
}

// live reports whether the item is still visible at now. This is the single
// liveness predicate shared by reads and the sweep.
func (i item[V]) live(now time.Time) bool {
	return i.expiry.IsZero() || now.Before(i.expiry)
}

type config struct {
	defaultTTL time.Duration
	timeNow    func() time.Time
	metrics    Metrics
}

// Option configures a Cache.
type Option func(*config)

// WithDefaultTTL sets the time-to-live applied to entries inserted without
// a per-entry [WithTTL]. Without this option entries never expire by default.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.defaultTTL = ttl
	}
}

// WithClock overrides the time source. Useful for deterministic expiry tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.timeNow = now
		}
	}
}

// WithMetrics sets the metrics implementation (default: no-op).
func WithMetrics(m Metrics) Option {
	return func(c *config) {
		if m != nil {
			c.metrics = m
		}
	}
}

// SetOptions holds optional parameters for Set operations.
type SetOptions struct {
	TTL time.Duration
}

// SetOption is a functional option for [Cache.Set] and [Cache.GetOrCompute].
type SetOption func(*SetOptions)

// WithTTL sets a custom TTL for the entry being set, overriding the cache's
// default. If ttl is zero or negative, the default TTL is used instead.
func WithTTL(ttl time.Duration) SetOption {
	return func(o *SetOptions) {
		o.TTL = ttl
	}
}

// Cache is an in-memory key-value store with optional per-entry expiry.
// It is safe for concurrent use by multiple goroutines; all operations
// serialize on a single read-write lock. Create one with [New].
type Cache[K comparable, V any] struct {
	mu         sync.RWMutex
	items      map[K]item[V]
	defaultTTL time.Duration
	timeNow    func() time.Time
	metrics    Metrics

	computeMu sync.Mutex
	computing map[K]*inflight[V]
}

// New creates an empty Cache.
func New[K comparable, V any](opts ...Option) *Cache[K, V] {
	cfg := &config{
		timeNow: time.Now,
		metrics: NopMetrics(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Cache[K, V]{
		items:      make(map[K]item[V]),
		defaultTTL: cfg.defaultTTL,
		timeNow:    cfg.timeNow,
		metrics:    cfg.metrics,
		computing:  make(map[K]*inflight[V]),
	}
}

// Set inserts or replaces the entry for key. The entry expires after the
// per-entry TTL given via [WithTTL], falling back to the cache's default
// TTL, falling back to never. A replaced entry's expiry is never inherited.
// Set returns the displaced value, if any.
func (c *Cache[K, V]) Set(key K, val V, opts ...SetOption) (prev V, replaced bool) {
	var o SetOptions
	for _, opt := range opts {
		opt(&o)
	}

	ttl := c.defaultTTL
	if o.TTL > 0 {
		ttl = o.TTL
	}

	var expiry time.Time
	if ttl > 0 {
		expiry = c.timeNow().Add(ttl)
	}

	c.mu.Lock()
	old, ok := c.items[key]
	c.items[key] = item[V]{val: val, expiry: expiry}
	size := len(c.items)
	c.mu.Unlock()

	c.metrics.Size(size)
	if !ok {
		return prev, false
	}
	return old.val, true
}

// Get returns the value for key if an entry exists and has not expired.
// Expired entries are treated as absent but are not removed; physical
// removal is the job of [Cache.RemoveExpired].
func (c *Cache[K, V]) Get(key K) (V, bool) {
	now := c.timeNow()

	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || !it.live(now) {
		c.metrics.Miss()
		var zero V
		return zero, false
	}

	c.metrics.Hit()
	return it.val, true
}

// GetWithTTL is like [Cache.Get] but also returns the entry's remaining
// time-to-live. Entries that never expire report a zero TTL.
func (c *Cache[K, V]) GetWithTTL(key K) (V, time.Duration, bool) {
	now := c.timeNow()

	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || !it.live(now) {
		c.metrics.Miss()
		var zero V
		return zero, 0, false
	}

	c.metrics.Hit()
	var ttl time.Duration
	if !it.expiry.IsZero() {
		ttl = it.expiry.Sub(now)
	}
	return it.val, ttl, true
}

// Remove deletes the entry for key and returns its value if one was
// physically present, regardless of expiry state.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	it, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	delete(c.items, key)
	size := len(c.items)
	c.mu.Unlock()

	c.metrics.Size(size)
	return it.val, true
}

// RemoveExpired deletes every entry whose expiry has passed and returns the
// number of entries removed. Expired keys are collected under the read lock
// first; the write lock is only held for the deletions themselves. Each key
// is re-checked before deletion so a concurrent Set that replaced an expired
// entry with a live one is never clobbered.
//
// After RemoveExpired returns, no entry that was expired before the call
// began remains in the store.
func (c *Cache[K, V]) RemoveExpired() int {
	defer c.metrics.SweepDuration().ObserveDuration()

	now := c.timeNow()

	c.mu.RLock()
	var expired []K
	for key, it := range c.items {
		if !it.live(now) {
			expired = append(expired, key)
		}
	}
	c.mu.RUnlock()

	if len(expired) == 0 {
		return 0
	}

	removed := 0
	c.mu.Lock()
	for _, key := range expired {
		if it, ok := c.items[key]; ok && !it.live(now) {
			delete(c.items, key)
			removed++
		}
	}
	size := len(c.items)
	c.mu.Unlock()

	c.metrics.Swept(removed)
	c.metrics.Size(size)
	return removed
}

// Clear removes all entries regardless of expiry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	c.items = make(map[K]item[V])
	c.mu.Unlock()

	c.metrics.Size(0)
}

// Len returns the number of physically stored entries, including expired
// entries that have not been swept yet.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// IsEmpty reports whether the store holds no entries at all, live or expired.
func (c *Cache[K, V]) IsEmpty() bool {
	return c.Len() == 0
}
