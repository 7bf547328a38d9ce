package catalog

import (
	"github.com/angelmondragon/cardfinderz/pkg/config"
	"github.com/angelmondragon/cardfinderz/pkg/logger"
	"github.com/angelmondragon/cardfinderz/pkg/metrics"
	"github.com/angelmondragon/cardfinderz/pkg/pokemontcg"
	"github.com/angelmondragon/cardfinderz/pkg/redis"
)

// NewFromConfig builds the Pokémon TCG backed lookup. When cache is non-nil
// and a TTL is configured the lookup is wrapped with the redis cache.
func NewFromConfig(cfg config.CatalogConfig, cache *redis.Client, logg *logger.Logger, m *metrics.SearchMetrics) (Lookup, error) {
	client := pokemontcg.NewClient(
		cfg.APIKey,
		pokemontcg.WithBaseURL(cfg.BaseURL),
		pokemontcg.WithTimeout(cfg.Timeout),
		pokemontcg.WithPageSize(cfg.PageSize),
	)
	svc, err := NewService(client, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if cache == nil || cfg.CacheTTL <= 0 {
		return svc, nil
	}
	return NewCachedLookup(svc, cache, cfg.CacheTTL, logg, m)
}
