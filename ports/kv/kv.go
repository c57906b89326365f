// Package kv defines the key-value store port an embedding application
// codes against, plus a cache-backed implementation.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by Get for keys that are absent or expired.
var ErrNotFound = errors.New("not found")

// Entry is an opaque stored payload.
type Entry struct {
	Data []byte
}

// PutOptions controls a single Put. A zero TTL means the store decides
// (for CacheStore: its default TTL, or never).
type PutOptions struct {
	TTL time.Duration
}

// Store is a context-aware key-value store with per-entry TTL.
type Store interface {
	Put(ctx context.Context, key string, entry Entry, opts PutOptions) error
	Get(ctx context.Context, key string) (entry Entry, err error)
	Delete(ctx context.Context, key string) error
}

// Put marshals v as JSON and stores it under key.
func Put[T any](ctx context.Context, store Store, key string, v T, opts PutOptions) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Put(ctx, key, Entry{Data: data}, opts)
}

// Get loads the entry under key and unmarshals it into T.
func Get[T any](ctx context.Context, store Store, key string) (out T, err error) {
	entry, err := store.Get(ctx, key)
	if err != nil {
		return
	}
	err = json.Unmarshal(entry.Data, &out)
	if err != nil {
		return
	}
	return
}
