// internal/engine/weights.go
package engine

import (
	"fmt"
	"math"
)

// Weights maps score dimension names to their share of the total
// score. A valid set is non-negative and sums to exactly 1.0.
type Weights map[string]float64

// DefaultWeights returns the standard weight set: compatibility
// dominates, then turnaround, then walking distance.
func DefaultWeights() Weights {
	return Weights{
		DimCompatibility: 0.5,
		DimTurnaround:    0.3,
		DimDistance:      0.2,
	}
}

// Validate checks the sum-to-1.0 invariant. The comparison is exact,
// matching the update contract: 0.5+0.3+0.2 composed of these literals
// sums to 1.0 exactly in float64.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("weights are empty")
	}

	var sum float64
	for dim, weight := range w {
		if weight < 0 {
			return fmt.Errorf("weight for %q is negative", dim)
		}
		sum += weight
	}

	if sum != 1.0 {
		return fmt.Errorf("weights sum to %v, want 1.0", sum)
	}
	return nil
}

// Clone returns an independent copy.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// TotalScore combines sub-scores into a single weighted total, rounded
// to two decimal places.
func TotalScore(scores GateScores, weights Weights) float64 {
	total := scores.Compatibility*weights[DimCompatibility] +
		scores.Turnaround*weights[DimTurnaround] +
		scores.Distance*weights[DimDistance]
	return math.Round(total*100) / 100
}
