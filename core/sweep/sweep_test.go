package sweep

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cobbinma/r-cache/core/cache"
)

type countingTarget struct {
	sweeps atomic.Int32
}

func (c *countingTarget) RemoveExpired() int {
	c.sweeps.Add(1)
	return 1
}

func TestRunner_SweepsOnInterval(t *testing.T) {
	target := &countingTarget{}
	r := New(target, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return target.sweeps.Load() >= 2
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}

func TestRunner_SweepsCache(t *testing.T) {
	c := cache.New[string, string](cache.WithDefaultTTL(time.Nanosecond))
	c.Set("a", "x")
	c.Set("b", "y")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go New(c, time.Millisecond).Run(ctx)

	require.Eventually(t, func() bool {
		return c.Len() == 0
	}, time.Second, time.Millisecond)
}

func TestRunner_StopsImmediately(t *testing.T) {
	target := &countingTarget{}
	r := New(target, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on already-cancelled context")
	}
	require.Zero(t, target.sweeps.Load())
}
