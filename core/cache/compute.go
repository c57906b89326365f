package cache

// inflight is a single in-progress computation. Waiters block on done and
// then read val/err.
type inflight[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// GetOrCompute returns the cached value for key, or computes, stores and
// returns it if the key is absent or expired. Concurrent calls for the same
// key are deduplicated: only one invocation of compute is in-flight per key
// at a time and all callers receive its result. Flights are keyed on K
// directly, so distinct keys never share a flight. A failed compute caches
// nothing and its error is returned to every waiting caller.
//
// compute runs outside the cache lock, so it may call back into the cache.
// Options such as [WithTTL] apply to the stored entry.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() (V, error), opts ...SetOption) (V, error) {
	if val, ok := c.Get(key); ok {
		return val, nil
	}

	c.computeMu.Lock()
	if f, ok := c.computing[key]; ok {
		c.computeMu.Unlock()
		<-f.done
		return f.val, f.err
	}
	f := &inflight[V]{done: make(chan struct{})}
	c.computing[key] = f
	c.computeMu.Unlock()

	// Re-check: a previous flight may have stored the value between our
	// miss and winning the flight.
	if val, ok := c.Get(key); ok {
		f.val = val
	} else {
		f.val, f.err = compute()
		if f.err == nil {
			c.Set(key, f.val, opts...)
		}
	}

	c.computeMu.Lock()
	delete(c.computing, key)
	c.computeMu.Unlock()
	close(f.done)

	return f.val, f.err
}
