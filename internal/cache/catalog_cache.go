package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/qoloner/qoloner-api/internal/models"
)

// snapshotKey holds the serialized full catalog. One key for the whole
// catalog: the product set is small and filtered in memory per request.
const snapshotKey = "catalog:snapshot"

// CatalogCache caches the unfiltered product snapshot between catalog
// requests. Cache trouble is never surfaced to the caller: a broken cache
// degrades to fetching from the store.
type CatalogCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewCatalogCache creates a new CatalogCache with the given snapshot TTL.
func NewCatalogCache(redis *RedisClient, ttl time.Duration) *CatalogCache {
	return &CatalogCache{redis: redis, ttl: ttl}
}

// GetSnapshot returns the cached catalog and whether it was present.
func (c *CatalogCache) GetSnapshot(ctx context.Context) ([]models.Product, bool) {
	raw, err := c.redis.Get(ctx, snapshotKey)
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("catalog snapshot read failed")
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		log.Warn().Err(err).Msg("catalog snapshot corrupt - dropping")
		_ = c.redis.Delete(ctx, snapshotKey)
		return nil, false
	}
	return products, true
}

// SetSnapshot stores the full catalog with the configured TTL.
func (c *CatalogCache) SetSnapshot(ctx context.Context, products []models.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		log.Warn().Err(err).Msg("catalog snapshot marshal failed")
		return
	}
	if err := c.redis.Set(ctx, snapshotKey, string(raw), c.ttl); err != nil {
		log.Warn().Err(err).Msg("catalog snapshot write failed")
	}
}

// Invalidate drops the snapshot. Called after a listing is created so the
// next catalog fetch sees the new product.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.redis.Delete(ctx, snapshotKey); err != nil {
		log.Warn().Err(err).Msg("catalog snapshot invalidation failed")
	}
}
