// Package prometheus provides a Prometheus implementation of the cache
// metrics interface.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cobbinma/r-cache/core/cache"
	"github.com/cobbinma/r-cache/core/metrics"
)

// timer wraps a Prometheus histogram to implement the Timer interface.
type timer struct {
	h     prometheus.Observer
	start time.Time
}

func newTimer(h prometheus.Observer) metrics.Timer {
	return &timer{h: h, start: time.Now()}
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

// Default histogram buckets for sweep latency (in seconds). Sweeps are
// in-memory scans, so the buckets skew small.
var defaultBuckets = []float64{
	.000001, .00001, .0001, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1,
}

// cacheMetrics implements cache.Metrics using Prometheus.
type cacheMetrics struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	sweptTotal    prometheus.Counter
	sweepDuration prometheus.Histogram
	entries       prometheus.Gauge
}

// NewCacheMetrics creates a Prometheus implementation of cache.Metrics and
// registers its collectors with reg.
func NewCacheMetrics(reg prometheus.Registerer) cache.Metrics {
	m := &cacheMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rcache_hits_total",
			Help: "Total number of reads that returned a live value",
		}),

		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rcache_misses_total",
			Help: "Total number of reads of absent or expired keys",
		}),

		sweptTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rcache_swept_entries_total",
			Help: "Total number of expired entries removed by sweeps",
		}),

		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rcache_sweep_duration_seconds",
			Help:    "Sweep latency in seconds",
			Buckets: defaultBuckets,
		}),

		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rcache_entries",
			Help: "Number of physically stored entries, including unswept expired ones",
		}),
	}

	reg.MustRegister(
		m.hits,
		m.misses,
		m.sweptTotal,
		m.sweepDuration,
		m.entries,
	)

	return m
}

func (m *cacheMetrics) Hit() {
	m.hits.Inc()
}

func (m *cacheMetrics) Miss() {
	m.misses.Inc()
}

func (m *cacheMetrics) Swept(count int) {
	m.sweptTotal.Add(float64(count))
}

func (m *cacheMetrics) SweepDuration() metrics.Timer {
	return newTimer(m.sweepDuration)
}

func (m *cacheMetrics) Size(count int) {
	m.entries.Set(float64(count))
}

var _ cache.Metrics = (*cacheMetrics)(nil)
