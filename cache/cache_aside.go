package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_aside_hits_total",
			Help: "Cache-aside reads served from the fast store",
		},
		[]string{"key_prefix"},
	)

	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_aside_misses_total",
			Help: "Cache-aside reads computed from the durable store",
		},
		[]string{"key_prefix"},
	)
)

// GetOrCompute implements cache-aside with silent degrade: try the fast
// store, fall back to compute on miss or error, then best-effort write the
// serialized result back with the given TTL. Fast-store failures are logged
// and swallowed; only compute errors propagate.
func GetOrCompute[T any](ctx context.Context, store Store, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	var zero T

	if raw, err := store.Get(ctx, key); err == nil {
		var cached T
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			cacheHits.WithLabelValues(keyPrefix(key)).Inc()
			return cached, nil
		}
		// Corrupt entry: fall through and recompute over it
		log.Printf("cache: undecodable entry for %q, recomputing", key)
	} else if !errors.Is(err, ErrMiss) {
		log.Printf("cache: read failed for %q: %v", key, err)
	}

	cacheMisses.WithLabelValues(keyPrefix(key)).Inc()

	value, err := compute(ctx)
	if err != nil {
		return zero, err
	}

	if bs, err := json.Marshal(value); err == nil {
		if err := store.SetWithExpiry(ctx, key, string(bs), ttl); err != nil {
			log.Printf("cache: write-through failed for %q: %v", key, err)
		}
	}

	return value, nil
}

func keyPrefix(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return key[:i]
		}
	}
	return key
}
