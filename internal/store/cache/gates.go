// internal/store/cache/gates.go

// Package cache provides Redis read-through caching decorators for the
// hot read paths: the gate pool (read on every recommendation batch)
// and the active optimization weights.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/VivekSamant23/Gate-Reassignment/internal/common/logger"
	"github.com/VivekSamant23/Gate-Reassignment/internal/engine"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

const gatesKey = "gates:all"

// GateCache decorates an engine.GateSource with a Redis read-through
// cache. Redis failures are never fatal: reads fall through to the
// underlying source and write failures are only logged.
type GateCache struct {
	next   engine.GateSource
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewGateCache(next engine.GateSource, client *redis.Client, ttl time.Duration, log logger.Logger) *GateCache {
	return &GateCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "gate-cache"}),
	}
}

// AllGates serves the gate pool from Redis when fresh, refilling from
// the underlying source on a miss.
func (c *GateCache) AllGates(ctx context.Context) ([]models.Gate, error) {
	raw, err := c.client.Get(ctx, gatesKey).Result()
	if err == nil {
		var gates []models.Gate
		if err := json.Unmarshal([]byte(raw), &gates); err == nil {
			return gates, nil
		}
		// A corrupt entry is dropped and refilled below.
		c.client.Del(ctx, gatesKey)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("gate cache read failed, falling back to source", map[string]interface{}{
			"error": err.Error(),
		})
	}

	gates, err := c.next.AllGates(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(gates); err == nil {
		if err := c.client.Set(ctx, gatesKey, raw, c.ttl).Err(); err != nil {
			c.logger.Warn("gate cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return gates, nil
}

// Invalidate drops the cached gate pool, forcing the next read to hit
// the underlying source.
func (c *GateCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, gatesKey).Err(); err != nil {
		c.logger.Warn("gate cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
