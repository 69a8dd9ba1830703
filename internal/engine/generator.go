// internal/engine/generator.go
package engine

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	apperrors "github.com/VivekSamant23/Gate-Reassignment/internal/common/errors"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/logger"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/metrics"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

// Engine generates ranked gate recommendations for batches of flights.
// It owns the active optimization weight set; everything else comes in
// through the source interfaces, so the engine is testable with
// in-memory fixtures.
type Engine struct {
	flights FlightSource
	gates   GateSource
	store   RecommendationStore
	logger  logger.Logger

	mu      sync.RWMutex
	weights Weights
}

// New creates an Engine with the given initial weights. Invalid or nil
// initial weights fall back to the defaults.
func New(flights FlightSource, gates GateSource, store RecommendationStore, weights Weights, log logger.Logger) *Engine {
	if weights == nil || weights.Validate() != nil {
		weights = DefaultWeights()
	}
	return &Engine{
		flights: flights,
		gates:   gates,
		store:   store,
		logger:  log.WithFields(map[string]interface{}{"component": "recommendation-engine"}),
		weights: weights.Clone(),
	}
}

// ActiveWeights returns a copy of the weight set currently in effect.
func (e *Engine) ActiveWeights() Weights {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.weights.Clone()
}

// UpdateWeights replaces the active weight set wholesale. On validation
// failure the previous set stays in effect and nothing is partially
// applied.
func (e *Engine) UpdateWeights(weights Weights) error {
	if err := weights.Validate(); err != nil {
		return apperrors.NewWeightsInvalidError(err.Error())
	}

	e.mu.Lock()
	e.weights = weights.Clone()
	e.mu.Unlock()

	e.logger.Info("optimization weights updated", map[string]interface{}{
		"weights": weights,
	})
	return nil
}

// Generate computes ranked recommendations for the given flights.
//
// Per flight: a missing flight is skipped silently, a flight with no
// available gates contributes nothing. The accumulated list is sorted
// by total score descending (stable, so ties keep flight processing
// order then gate discovery order), persisted as a replacement for any
// previously stored recommendations of the requested flights, and
// returned in full. A persistence failure fails the whole call; the
// transactional replace leaves the prior state untouched in that case.
func (e *Engine) Generate(ctx context.Context, flightIDs []int64) ([]models.Recommendation, error) {
	start := time.Now()

	allGates, err := e.gates.AllGates(ctx)
	if err != nil {
		metrics.RecommendationBatches.WithLabelValues("error").Inc()
		return nil, apperrors.NewQueryExecutionFailedError("gates-all", err)
	}

	weights := e.ActiveWeights()
	recommendations := []models.Recommendation{}

	for _, flightID := range flightIDs {
		flight, err := e.flights.FlightByID(ctx, flightID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				e.logger.Debug("flight not found, skipping", map[string]interface{}{
					"flightId": flightID,
				})
				continue
			}
			metrics.RecommendationBatches.WithLabelValues("error").Inc()
			return nil, apperrors.NewQueryExecutionFailedError("flight-by-id", err)
		}

		conflicts, err := e.flights.ActiveFlights(ctx, flight.ScheduledDate, flight.FlightType)
		if err != nil {
			metrics.RecommendationBatches.WithLabelValues("error").Inc()
			return nil, apperrors.NewQueryExecutionFailedError("active-flights", err)
		}

		for _, gate := range AvailableGates(flight, allGates, conflicts) {
			scores := ScoreGate(flight, &gate)
			metrics.GatesEvaluated.Inc()

			recommendations = append(recommendations, models.Recommendation{
				FlightID:           flight.ID,
				GateID:             gate.ID,
				GateNumber:         gate.GateNumber,
				CompatibilityScore: scores.Compatibility,
				TurnaroundScore:    scores.Turnaround,
				DistanceScore:      scores.Distance,
				TotalScore:         TotalScore(scores, weights),
				Status:             models.RecommendationRecommended,
			})
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].TotalScore > recommendations[j].TotalScore
	})

	if err := e.store.ReplaceForFlights(ctx, flightIDs, recommendations); err != nil {
		metrics.RecommendationBatches.WithLabelValues("error").Inc()
		return nil, apperrors.NewPersistFailedError(err)
	}

	metrics.RecommendationBatches.WithLabelValues("ok").Inc()
	metrics.RecommendationsGenerated.Add(float64(len(recommendations)))

	e.logger.Info("recommendations generated", map[string]interface{}{
		"flights":         len(flightIDs),
		"recommendations": len(recommendations),
		"durationMs":      time.Since(start).Milliseconds(),
	})

	return recommendations, nil
}
