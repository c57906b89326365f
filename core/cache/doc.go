// Package cache provides a thread-safe, in-memory key-value cache with
// optional per-entry expiry.
//
// A [Cache] maps keys to values; every entry carries an absolute expiry
// instant computed once at insertion time, or no expiry at all. Expiry is
// lazy: [Cache.Get] evaluates liveness at read time and never mutates the
// store, so expired entries remain physically present until
// [Cache.RemoveExpired] sweeps them out. The cache does not schedule sweeps
// itself; run one on a timer with the sweep package, or call RemoveExpired
// directly.
//
// # Basic Usage
//
//	c := cache.New[string, string](cache.WithDefaultTTL(5 * time.Minute))
//
//	c.Set("key", "value")                          // expires after the default TTL
//	c.Set("session", token, cache.WithTTL(30*time.Second))
//
//	if val, ok := c.Get("key"); ok {
//	    // Use val
//	}
//
// A cache constructed without [WithDefaultTTL] stores entries that never
// expire unless [WithTTL] is given per entry.
//
// # Sweeping
//
// Embedding applications own the sweep schedule:
//
//	go sweep.New(c, 10*time.Minute).Run(ctx)
//
// # Sharding
//
// All operations on a Cache serialize on a single read-write lock. For
// write-heavy workloads over string keys, [Sharded] splits the key space
// over independent caches to reduce lock contention.
package cache
