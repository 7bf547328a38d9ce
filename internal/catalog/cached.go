package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/angelmondragon/cardfinderz/internal/cards"
	"github.com/angelmondragon/cardfinderz/pkg/logger"
	"github.com/angelmondragon/cardfinderz/pkg/metrics"
	"github.com/angelmondragon/cardfinderz/pkg/redis"
)

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	LookupKey(query string) string
}

// CachedLookup stores successful upstream responses in redis and collapses
// concurrent misses for the same query into one upstream call. Cache errors
// are logged and bypassed; failures are never cached.
type CachedLookup struct {
	next    Lookup
	store   cacheStore
	ttl     time.Duration
	logg    *logger.Logger
	metrics *metrics.SearchMetrics
	group   singleflight.Group
}

func NewCachedLookup(next Lookup, store cacheStore, ttl time.Duration, logg *logger.Logger, m *metrics.SearchMetrics) (*CachedLookup, error) {
	if next == nil {
		return nil, fmt.Errorf("next lookup required")
	}
	if store == nil {
		return nil, fmt.Errorf("cache store required")
	}
	return &CachedLookup{next: next, store: store, ttl: ttl, logg: logg, metrics: m}, nil
}

func (c *CachedLookup) Lookup(ctx context.Context, q Query) ([]cards.Card, error) {
	key := c.store.LookupKey(q.Upstream())

	if cached, ok := c.read(ctx, key); ok {
		c.metrics.IncCacheHit()
		return cached, nil
	}
	c.metrics.IncCacheMiss()

	// The shared call outlives any single caller; each caller still stops
	// waiting when its own context ends.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		result, err := c.next.Lookup(shared, q)
		if err != nil {
			return nil, err
		}
		c.write(shared, key, result)
		return result, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]cards.Card)), nil
	}
}

func (c *CachedLookup) read(ctx context.Context, key string) ([]cards.Card, bool) {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !redis.IsMiss(err) {
			c.warn(ctx, key, "catalog.cache.read_failed", err)
		}
		return nil, false
	}
	var result []cards.Card
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		c.warn(ctx, key, "catalog.cache.decode_failed", err)
		return nil, false
	}
	return result, true
}

func (c *CachedLookup) write(ctx context.Context, key string, result []cards.Card) {
	payload, err := json.Marshal(result)
	if err != nil {
		c.warn(ctx, key, "catalog.cache.encode_failed", err)
		return
	}
	if err := c.store.Set(ctx, key, string(payload), c.ttl); err != nil {
		c.warn(ctx, key, "catalog.cache.write_failed", err)
	}
}

func (c *CachedLookup) warn(ctx context.Context, key, msg string, err error) {
	if c.logg == nil {
		return
	}
	c.logg.Warn(c.logg.WithFields(ctx, map[string]any{"cache_key": key, "error": err.Error()}), msg)
}
