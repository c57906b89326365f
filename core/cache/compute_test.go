package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetOrCompute_CachesResult(t *testing.T) {
	c := New[string, string]()

	var calls atomic.Int32
	compute := func() (string, error) {
		calls.Add(1)
		return "value", nil
	}

	got, err := c.GetOrCompute("key", compute)
	require.NoError(t, err)
	require.Equal(t, "value", got)

	got, err = c.GetOrCompute("key", compute)
	require.NoError(t, err)
	require.Equal(t, "value", got)

	require.Equal(t, int32(1), calls.Load())
}

func TestGetOrCompute_ErrorNotCached(t *testing.T) {
	c := New[string, string]()

	boom := errors.New("boom")
	_, err := c.GetOrCompute("key", func() (string, error) {
		return "", boom
	})
	require.ErrorIs(t, err, boom)

	_, ok := c.Get("key")
	require.False(t, ok)

	got, err := c.GetOrCompute("key", func() (string, error) {
		return "value", nil
	})
	require.NoError(t, err)
	require.Equal(t, "value", got)
}

func TestGetOrCompute_AppliesTTL(t *testing.T) {
	clock := newFakeClock()
	c := New[string, string](WithClock(clock.Now))

	_, err := c.GetOrCompute("key", func() (string, error) {
		return "value", nil
	}, WithTTL(time.Second))
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, ok := c.Get("key")
	require.False(t, ok)
}

func TestGetOrCompute_DistinctKeysDistinctFlights(t *testing.T) {
	c := New[[2]string, string]()

	// both keys render identically with %v ([a b ]); flights must be keyed
	// on the key value itself, not a string rendering of it
	k1 := [2]string{"a b", ""}
	k2 := [2]string{"a", "b "}

	entered := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan string, 1)

	go func() {
		val, _ := c.GetOrCompute(k1, func() (string, error) {
			close(entered)
			<-release
			return "value-for-k1", nil
		})
		firstDone <- val
	}()

	// with k1's flight still open, k2 must compute its own value instead
	// of joining k1's flight
	<-entered
	got, err := c.GetOrCompute(k2, func() (string, error) {
		return "value-for-k2", nil
	})
	require.NoError(t, err)
	require.Equal(t, "value-for-k2", got)

	close(release)
	require.Equal(t, "value-for-k1", <-firstDone)

	got, ok := c.Get(k2)
	require.True(t, ok)
	require.Equal(t, "value-for-k2", got)
}

func TestGetOrCompute_ConcurrentSingleFlight(t *testing.T) {
	r := require.New(t)
	c := New[string, int]()

	const goroutines = 100
	var calls atomic.Int32
	var wg sync.WaitGroup
	results := make([]int, goroutines)

	// all goroutines try to get the same key concurrently
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			val, err := c.GetOrCompute("shared", func() (int, error) {
				calls.Add(1)
				return 42, nil
			})
			r.NoError(err)
			results[idx] = val
		}(i)
	}
	wg.Wait()

	r.Equal(int32(1), calls.Load(), "compute should be called exactly once")
	for i, result := range results {
		r.Equal(42, result, "goroutine %d got wrong result", i)
	}
}
