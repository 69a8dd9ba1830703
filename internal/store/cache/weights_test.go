// internal/store/cache/weights_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VivekSamant23/Gate-Reassignment/internal/common/logger"
	"github.com/VivekSamant23/Gate-Reassignment/internal/engine"
)

type countingWeightsLoader struct {
	weights engine.Weights
	calls   int
}

func (s *countingWeightsLoader) LoadWeights(_ context.Context) (engine.Weights, error) {
	s.calls++
	return s.weights, nil
}

func TestWeightsCacheReadThrough(t *testing.T) {
	_, client := newRedisClient(t)
	loader := &countingWeightsLoader{weights: engine.Weights{
		engine.DimCompatibility: 0.4,
		engine.DimTurnaround:    0.4,
		engine.DimDistance:      0.2,
	}}
	cache := NewWeightsCache(loader, client, time.Minute, logger.NewNoOpLogger())

	weights, err := cache.LoadWeights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.4, weights[engine.DimCompatibility])
	assert.Equal(t, 1, loader.calls)

	weights, err = cache.LoadWeights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.2, weights[engine.DimDistance])
	assert.Equal(t, 1, loader.calls, "second read must be a cache hit")
}

func TestWeightsCacheNoPersistedWeights(t *testing.T) {
	mr, client := newRedisClient(t)
	loader := &countingWeightsLoader{weights: nil}
	cache := NewWeightsCache(loader, client, time.Minute, logger.NewNoOpLogger())

	weights, err := cache.LoadWeights(context.Background())
	require.NoError(t, err)
	assert.Nil(t, weights)
	assert.False(t, mr.Exists("config:optimization_weights"), "nothing to cache")
}

func TestWeightsCacheStoreServesLaterReads(t *testing.T) {
	_, client := newRedisClient(t)
	loader := &countingWeightsLoader{}
	cache := NewWeightsCache(loader, client, time.Minute, logger.NewNoOpLogger())

	cache.Store(context.Background(), engine.DefaultWeights())

	weights, err := cache.LoadWeights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultWeights(), weights)
	assert.Zero(t, loader.calls)
}
