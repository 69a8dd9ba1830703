// internal/engine/weights_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWeightsValid(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
}

func TestValidateRejectsBadSum(t *testing.T) {
	w := Weights{
		DimCompatibility: 0.6,
		DimTurnaround:    0.3,
		DimDistance:      0.2,
	}
	assert.Error(t, w.Validate(), "sum 1.1 must be rejected")
}

func TestValidateRejectsNegative(t *testing.T) {
	w := Weights{
		DimCompatibility: 1.5,
		DimTurnaround:    -0.3,
		DimDistance:      -0.2,
	}
	assert.Error(t, w.Validate())
}

func TestValidateRejectsEmpty(t *testing.T) {
	assert.Error(t, Weights{}.Validate())
	assert.Error(t, Weights(nil).Validate())
}

func TestTotalScoreWeightedSum(t *testing.T) {
	scores := GateScores{Compatibility: 100, Turnaround: 80, Distance: 60}
	total := TotalScore(scores, DefaultWeights())
	// 100*0.5 + 80*0.3 + 60*0.2 = 86
	assert.Equal(t, 86.0, total)
}

func TestTotalScoreRoundsToTwoDecimals(t *testing.T) {
	// Worked reference case: contact gate, no coordinates.
	// compatibility 100, turnaround 100*(60-30)/35 = 85.7142...,
	// distance 50. Weighted: 50 + 25.7142... + 10 = 85.7142... -> 85.71.
	scores := GateScores{Compatibility: 100, Turnaround: 100.0 * 30 / 35, Distance: 50}
	total := TotalScore(scores, DefaultWeights())
	assert.Equal(t, 85.71, total)
}

func TestCloneIsIndependent(t *testing.T) {
	w := DefaultWeights()
	c := w.Clone()
	c[DimCompatibility] = 0.9
	assert.Equal(t, 0.5, w[DimCompatibility])
}
