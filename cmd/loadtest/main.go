// Load generator for the cache: W writers and R readers hammer a shared
// key set while a sweeper reclaims expired entries.
//
// Prometheus metrics available at: http://localhost:2121/metrics
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	promadapter "github.com/cobbinma/r-cache/adapters/prometheus"
	"github.com/cobbinma/r-cache/core/cache"
	"github.com/cobbinma/r-cache/core/sweep"
)

// === Config ===

var (
	numKeys       = getEnvInt("KEYS", 10_000)
	numWriters    = getEnvInt("W", 8)
	numReaders    = getEnvInt("R", 32)
	runFor        = getEnvDuration("DURATION", 30*time.Second)
	entryTTL      = getEnvDuration("TTL", 500*time.Millisecond)
	sweepInterval = getEnvDuration("SWEEP", 2*time.Second)
	metricsAddr   = getEnv("METRICS_ADDR", ":2121")
)

func getEnv(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, fmt.Sprintf("%d", fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil {
		return fallback
	}
	return v
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx, timeout := context.WithTimeout(ctx, runFor)
	defer timeout()

	reg := prometheus.NewRegistry()
	c := cache.New[string, string](
		cache.WithDefaultTTL(entryTTL),
		cache.WithMetrics(promadapter.NewCacheMetrics(reg)),
	)

	go func() {
		http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		if err := http.ListenAndServe(metricsAddr, nil); err != nil {
			log.Error("metrics server failed", slog.Any("error", err))
		}
	}()

	keys := make([]string, numKeys)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%s", gonanoid.Must(8))
	}

	log.Info("starting load",
		slog.Int("keys", numKeys),
		slog.Int("writers", numWriters),
		slog.Int("readers", numReaders),
		slog.Duration("ttl", entryTTL),
		slog.Duration("sweep_interval", sweepInterval),
	)

	go sweep.New(c, sweepInterval, sweep.WithLogger(log)).Run(ctx)

	var (
		g                  errgroup.Group
		sets, hits, misses atomic.Int64
	)

	for w := 0; w < numWriters; w++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			for ctx.Err() == nil {
				key := keys[rng.Intn(len(keys))]
				// every tenth write never expires
				if rng.Intn(10) == 0 {
					c.Set(key, gonanoid.Must(16))
				} else {
					c.Set(key, gonanoid.Must(16), cache.WithTTL(entryTTL/2))
				}
				sets.Add(1)
			}
			return nil
		})
	}

	for r := 0; r < numReaders; r++ {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			for ctx.Err() == nil {
				if _, ok := c.Get(keys[rng.Intn(len(keys))]); ok {
					hits.Add(1)
				} else {
					misses.Add(1)
				}
			}
			return nil
		})
	}

	_ = g.Wait()

	log.Info("done",
		slog.Int64("sets", sets.Load()),
		slog.Int64("hits", hits.Load()),
		slog.Int64("misses", misses.Load()),
		slog.Int("entries_left", c.Len()),
	)
}
