// internal/store/cache/weights.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/VivekSamant23/Gate-Reassignment/internal/common/logger"
	"github.com/VivekSamant23/Gate-Reassignment/internal/engine"
)

const weightsKey = "config:optimization_weights"

// WeightsLoader reads the persisted optimization weights.
type WeightsLoader interface {
	LoadWeights(ctx context.Context) (engine.Weights, error)
}

// WeightsCache decorates a WeightsLoader with a Redis read-through
// cache and publishes updates back into it so restarts and other
// replicas see a consistent weight set quickly.
type WeightsCache struct {
	next   WeightsLoader
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewWeightsCache(next WeightsLoader, client *redis.Client, ttl time.Duration, log logger.Logger) *WeightsCache {
	return &WeightsCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "weights-cache"}),
	}
}

// LoadWeights serves the weight set from Redis when fresh. A nil result
// with nil error means no weights are persisted anywhere and the engine
// defaults apply.
func (c *WeightsCache) LoadWeights(ctx context.Context) (engine.Weights, error) {
	raw, err := c.client.Get(ctx, weightsKey).Result()
	if err == nil {
		var weights engine.Weights
		if err := json.Unmarshal([]byte(raw), &weights); err == nil {
			return weights, nil
		}
		c.client.Del(ctx, weightsKey)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("weights cache read failed, falling back to source", map[string]interface{}{
			"error": err.Error(),
		})
	}

	weights, err := c.next.LoadWeights(ctx)
	if err != nil {
		return nil, err
	}
	if weights != nil {
		c.Store(ctx, weights)
	}
	return weights, nil
}

// Store writes the weight set into the cache. Failures are logged only;
// the database row remains the source of truth.
func (c *WeightsCache) Store(ctx context.Context, weights engine.Weights) {
	raw, err := json.Marshal(weights)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, weightsKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("weights cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
