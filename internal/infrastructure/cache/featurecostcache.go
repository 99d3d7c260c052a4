package cache

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

// FeatureCostCache caches the admin cost overrides so the billable hot path
// does not query feature_costs on every request.
type FeatureCostCache interface {
	// Get returns ok=false on a miss. An empty table is a valid hit.
	Get(ctx context.Context) (entitlement.CostTable, bool, error)
	Set(ctx context.Context, costs entitlement.CostTable) error
	Invalidate(ctx context.Context) error
}

const (
	featureCostKey    = "feature:costs"
	featureCostMarker = "_loaded"
	costTTLJitter     = 30 * time.Second
)

type RedisFeatureCostCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisFeatureCostCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisFeatureCostCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisFeatureCostCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisFeatureCostCache) Get(ctx context.Context) (entitlement.CostTable, bool, error) {
	fields, err := c.client.HGetAll(ctx, featureCostKey).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read feature costs from cache: %w", err)
	}
	if _, loaded := fields[featureCostMarker]; !loaded {
		return nil, false, nil
	}

	costs := make(entitlement.CostTable, len(fields)-1)
	for k, v := range fields {
		if k == featureCostMarker {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			c.logger.Warnw("ignoring malformed cached cost", "feature", k, "value", v)
			continue
		}
		costs[entitlement.FeatureID(k)] = n
	}
	return costs, true, nil
}

func (c *RedisFeatureCostCache) Set(ctx context.Context, costs entitlement.CostTable) error {
	fields := make(map[string]any, len(costs)+1)
	fields[featureCostMarker] = "1"
	for f, cost := range costs {
		fields[f.String()] = cost
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, featureCostKey)
	pipe.HSet(ctx, featureCostKey, fields)
	pipe.Expire(ctx, featureCostKey, c.ttl+rand.N(costTTLJitter))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache feature costs: %w", err)
	}
	return nil
}

func (c *RedisFeatureCostCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, featureCostKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate feature costs: %w", err)
	}
	c.logger.Debugw("feature cost cache invalidated")
	return nil
}
