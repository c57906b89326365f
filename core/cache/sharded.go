package cache

import (
	"time"

	"github.com/cobbinma/r-cache/internal/shard"
)

const defaultShardCount = 16

// Sharded is a cache over string keys whose key space is hash-partitioned
// across independent [Cache] shards. Operations on keys in different shards
// never contend on the same lock. The per-operation contract is identical
// to Cache.
type Sharded[V any] struct {
	shards []*Cache[string, V]
}

// NewSharded creates a Sharded cache with shardCount shards (default 16 if
// shardCount <= 0). Options apply to every shard.
func NewSharded[V any](shardCount int, opts ...Option) *Sharded[V] {
	if shardCount <= 0 {
		shardCount = defaultShardCount
	}

	shards := make([]*Cache[string, V], shardCount)
	for i := range shards {
		shards[i] = New[string, V](opts...)
	}

	return &Sharded[V]{shards: shards}
}

func (s *Sharded[V]) shard(key string) *Cache[string, V] {
	return s.shards[shard.ForKey(key, len(s.shards))]
}

// Set inserts or replaces the entry for key in its shard.
func (s *Sharded[V]) Set(key string, val V, opts ...SetOption) (prev V, replaced bool) {
	return s.shard(key).Set(key, val, opts...)
}

// Get returns the value for key if present and live.
func (s *Sharded[V]) Get(key string) (V, bool) {
	return s.shard(key).Get(key)
}

// GetWithTTL returns the value and remaining TTL for key if present and live.
func (s *Sharded[V]) GetWithTTL(key string) (V, time.Duration, bool) {
	return s.shard(key).GetWithTTL(key)
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss. Deduplication is per shard, which is per key.
func (s *Sharded[V]) GetOrCompute(key string, compute func() (V, error), opts ...SetOption) (V, error) {
	return s.shard(key).GetOrCompute(key, compute, opts...)
}

// Remove deletes the entry for key regardless of expiry state.
func (s *Sharded[V]) Remove(key string) (V, bool) {
	return s.shard(key).Remove(key)
}

// RemoveExpired sweeps every shard and returns the total number of entries
// removed. Shards are swept one at a time; the cache is never globally locked.
func (s *Sharded[V]) RemoveExpired() int {
	removed := 0
	for _, c := range s.shards {
		removed += c.RemoveExpired()
	}
	return removed
}

// Clear removes all entries from every shard.
func (s *Sharded[V]) Clear() {
	for _, c := range s.shards {
		c.Clear()
	}
}

// Len returns the total number of physically stored entries across shards.
func (s *Sharded[V]) Len() int {
	n := 0
	for _, c := range s.shards {
		n += c.Len()
	}
	return n
}

// IsEmpty reports whether every shard is empty.
func (s *Sharded[V]) IsEmpty() bool {
	return s.Len() == 0
}
