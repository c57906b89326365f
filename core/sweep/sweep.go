// Package sweep runs periodic expiry sweeps against a cache.
//
// The cache itself never self-schedules; a [Runner] owns the timer and
// invokes RemoveExpired on the interval chosen by the embedding
// application. A typical interval is much longer than typical entry
// lifetimes, keeping sweep overhead low while bounding memory growth from
// stale entries.
//
//	c := cache.New[string, string](cache.WithDefaultTTL(5 * time.Minute))
//	go sweep.New(c, 10*time.Minute).Run(ctx)
package sweep

import (
	"context"
	"log/slog"
	"time"
)

// Target is anything that can be swept. Both cache.Cache and cache.Sharded
// satisfy it.
type Target interface {
	RemoveExpired() int
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger (default: slog.Default).
func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// Runner periodically sweeps expired entries from a Target.
type Runner struct {
	target   Target
	interval time.Duration
	log      *slog.Logger
}

// New creates a Runner that sweeps target every interval.
func New(target Target, interval time.Duration, opts ...Option) *Runner {
	r := &Runner{
		target:   target,
		interval: interval,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run sweeps on the interval until ctx is cancelled. It blocks; run it in
// its own goroutine.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := r.target.RemoveExpired()
			if removed > 0 {
				r.log.Debug("swept expired entries", slog.Int("removed", removed))
			}
		}
	}
}
