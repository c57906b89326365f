package kv

import (
	"context"

	"github.com/cobbinma/r-cache/core/cache"
)

// CacheStore is an in-memory Store backed by a cache.Cache. Entries put
// with a TTL expire lazily; pair it with a sweep.Runner to reclaim memory.
type CacheStore struct {
	c *cache.Cache[string, Entry]
}

// NewCacheStore creates a CacheStore. Options (default TTL, metrics, clock)
// are passed through to the underlying cache.
func NewCacheStore(opts ...cache.Option) *CacheStore {
	return &CacheStore{c: cache.New[string, Entry](opts...)}
}

func (s *CacheStore) Put(_ context.Context, key string, entry Entry, opts PutOptions) error {
	var setOpts []cache.SetOption
	if opts.TTL > 0 {
		setOpts = append(setOpts, cache.WithTTL(opts.TTL))
	}
	s.c.Set(key, entry, setOpts...)
	return nil
}

func (s *CacheStore) Get(_ context.Context, key string) (entry Entry, err error) {
	entry, ok := s.c.Get(key)
	if !ok {
		return entry, ErrNotFound
	}
	return entry, nil
}

func (s *CacheStore) Delete(_ context.Context, key string) error {
	s.c.Remove(key)
	return nil
}

// RemoveExpired sweeps the underlying cache, making CacheStore a valid
// sweep.Target.
func (s *CacheStore) RemoveExpired() int {
	return s.c.RemoveExpired()
}

// Len returns the number of physically stored entries, including expired
// entries that have not been swept yet.
func (s *CacheStore) Len() int { return s.c.Len() }

var _ Store = (*CacheStore)(nil)
