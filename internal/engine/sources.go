// internal/engine/sources.go
package engine

import (
	"context"
	"errors"

	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

// ErrNotFound is returned by sources when a record does not exist.
// The generator treats a missing flight as skippable, not fatal.
var ErrNotFound = errors.New("record not found")

// FlightSource resolves flights for scoring and conflict checking.
type FlightSource interface {
	// FlightByID returns the flight or ErrNotFound.
	FlightByID(ctx context.Context, id int64) (*models.Flight, error)

	// ActiveFlights returns flights on the given date with the given
	// flight type whose status still occupies a gate (scheduled or
	// delayed). Used for the occupancy check.
	ActiveFlights(ctx context.Context, scheduledDate, flightType string) ([]models.Flight, error)
}

// GateSource provides the full current gate pool.
type GateSource interface {
	AllGates(ctx context.Context) ([]models.Gate, error)
}

// RecommendationStore persists generated recommendations. The replace
// must be atomic: either the old rows for the given flights are gone
// and the new batch is stored, or nothing changed.
type RecommendationStore interface {
	ReplaceForFlights(ctx context.Context, flightIDs []int64, recs []models.Recommendation) error
}
