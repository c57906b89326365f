package cache

import "github.com/cobbinma/r-cache/core/metrics"

// Metrics defines the instrumentation hooks for a Cache. Implementations
// must be thread-safe.
type Metrics interface {
	// Hit records a read that returned a live value.
	Hit()
	// Miss records a read of an absent or expired key.
	Miss()
	// Swept records the number of entries removed by a sweep.
	Swept(count int)
	// SweepDuration times a single sweep.
	SweepDuration() metrics.Timer
	// Size records the physical entry count after a mutation.
	Size(count int)
}

// nopMetrics is a no-op implementation of Metrics.
type nopMetrics struct{}

func (nopMetrics) Hit()                         {}
func (nopMetrics) Miss()                        {}
func (nopMetrics) Swept(int)                    {}
func (nopMetrics) SweepDuration() metrics.Timer { return metrics.NopTimer() }
func (nopMetrics) Size(int)                     {}

// NopMetrics returns a no-op Metrics implementation.
func NopMetrics() Metrics { return nopMetrics{} }
