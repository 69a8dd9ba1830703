// internal/engine/scoring.go
package engine

import (
	"math"

	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

// Score dimension names. These match the keys of the
// optimization_weights config row.
const (
	DimCompatibility = "compatibility"
	DimTurnaround    = "turnaround"
	DimDistance      = "distance"
)

// Turnaround bounds in minutes: 25 minutes or faster scores 100,
// 60 minutes or slower scores 0.
const (
	minTurnaroundMinutes = 25
	maxTurnaroundMinutes = 60
)

// Walking distance bound in metres: at the terminal reference point a
// gate scores 100, at 1000 m or beyond it scores 0.
const maxWalkingDistance = 1000.0

// neutralDistanceScore is used when a gate has no surveyed coordinates.
const neutralDistanceScore = 50.0

// GateScores holds the three sub-scores for one (flight, gate) pair,
// each on a 0-100 scale.
type GateScores struct {
	Compatibility float64 `json:"compatibility"`
	Turnaround    float64 `json:"turnaround"`
	Distance      float64 `json:"distance"`
}

// ScoreGate computes all sub-scores for a candidate pairing. Pure
// function of the flight and gate.
func ScoreGate(flight *models.Flight, gate *models.Gate) GateScores {
	return GateScores{
		Compatibility: compatibilityScore(flight, gate),
		Turnaround:    turnaroundScore(gate),
		Distance:      distanceScore(gate),
	}
}

// compatibilityScore is 0 for an incompatible aircraft type (defensive;
// the availability filter already excludes those) and otherwise 100
// scaled down by gate category: contact gates are preferred over ramps,
// ramps over hangars.
func compatibilityScore(flight *models.Flight, gate *models.Gate) float64 {
	if !gate.SupportsAircraft(flight.AircraftType) {
		return 0
	}

	const base = 100.0
	switch gate.GateType {
	case models.GateTypeGate:
		return base
	case models.GateTypeRamp:
		return base * 0.9
	case models.GateTypeHangar:
		return base * 0.8
	}
	return base * 0.7
}

// turnaroundScore maps the nominal turnaround minutes for the gate
// category linearly onto [0,100], clamped at the bounds.
func turnaroundScore(gate *models.Gate) float64 {
	minutes := nominalTurnaroundMinutes(gate.GateType)

	if minutes <= minTurnaroundMinutes {
		return 100
	}
	if minutes >= maxTurnaroundMinutes {
		return 0
	}

	score := 100 * float64(maxTurnaroundMinutes-minutes) / float64(maxTurnaroundMinutes-minTurnaroundMinutes)
	return clampScore(score)
}

// nominalTurnaroundMinutes is a static per-category estimate. Ground
// handling equipment and taxiway distance are not modelled.
func nominalTurnaroundMinutes(gateType string) int {
	switch gateType {
	case models.GateTypeGate:
		return 30
	case models.GateTypeRamp:
		return 35
	case models.GateTypeHangar:
		return 45
	}
	return 40
}

// distanceScore maps the Euclidean distance from the terminal reference
// point (0,0) linearly onto [0,100]. Gates without coordinates get the
// neutral score.
func distanceScore(gate *models.Gate) float64 {
	if !gate.HasCoordinates() {
		return neutralDistanceScore
	}

	distance := math.Hypot(*gate.CoordinatesX, *gate.CoordinatesY)

	if distance <= 0 {
		return 100
	}
	if distance >= maxWalkingDistance {
		return 0
	}

	return clampScore(100 * (1 - distance/maxWalkingDistance))
}

func clampScore(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}
