// internal/engine/generator_test.go
package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VivekSamant23/Gate-Reassignment/internal/common/logger"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

// ==========================
// In-memory fixtures
// ==========================

type fakeFlightSource struct {
	flights map[int64]*models.Flight
	active  []models.Flight
	err     error
}

func (f *fakeFlightSource) FlightByID(_ context.Context, id int64) (*models.Flight, error) {
	if f.err != nil {
		return nil, f.err
	}
	flight, ok := f.flights[id]
	if !ok {
		return nil, ErrNotFound
	}
	return flight, nil
}

func (f *fakeFlightSource) ActiveFlights(_ context.Context, _, _ string) ([]models.Flight, error) {
	return f.active, nil
}

type fakeGateSource struct {
	gates []models.Gate
	err   error
}

func (f *fakeGateSource) AllGates(_ context.Context) ([]models.Gate, error) {
	return f.gates, f.err
}

type fakeRecommendationStore struct {
	calls     int
	flightIDs []int64
	recs      []models.Recommendation
	err       error
}

func (f *fakeRecommendationStore) ReplaceForFlights(_ context.Context, flightIDs []int64, recs []models.Recommendation) error {
	f.calls++
	f.flightIDs = flightIDs
	f.recs = recs
	return f.err
}

func newTestEngine(flights *fakeFlightSource, gates *fakeGateSource, store *fakeRecommendationStore) *Engine {
	return New(flights, gates, store, nil, logger.NewNoOpLogger())
}

// ==========================
// Tests
// ==========================

func TestGenerateWorkedExample(t *testing.T) {
	// Narrow-body arrival vs a contact gate with no conflicts and no
	// coordinates: compatibility 100, turnaround ~85.71, distance 50,
	// total 85.71 with default weights.
	flights := &fakeFlightSource{flights: map[int64]*models.Flight{1: narrowBodyArrival(1)}}
	gates := &fakeGateSource{gates: []models.Gate{standardGate(1, "A1")}}
	store := &fakeRecommendationStore{}

	recs, err := newTestEngine(flights, gates, store).Generate(context.Background(), []int64{1})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, int64(1), rec.FlightID)
	assert.Equal(t, "A1", rec.GateNumber)
	assert.Equal(t, 100.0, rec.CompatibilityScore)
	assert.InDelta(t, 85.714, rec.TurnaroundScore, 0.001)
	assert.Equal(t, 50.0, rec.DistanceScore)
	assert.Equal(t, 85.71, rec.TotalScore)
	assert.Equal(t, models.RecommendationRecommended, rec.Status)
}

func TestGenerateSortsByTotalScoreDescending(t *testing.T) {
	flights := &fakeFlightSource{flights: map[int64]*models.Flight{1: narrowBodyArrival(1)}}

	hangar := standardGate(1, "H1")
	hangar.GateType = models.GateTypeHangar
	contact := standardGate(2, "A1")
	ramp := standardGate(3, "R1")
	ramp.GateType = models.GateTypeRamp

	gates := &fakeGateSource{gates: []models.Gate{hangar, contact, ramp}}
	store := &fakeRecommendationStore{}

	recs, err := newTestEngine(flights, gates, store).Generate(context.Background(), []int64{1})
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "A1", recs[0].GateNumber)
	assert.Equal(t, "R1", recs[1].GateNumber)
	assert.Equal(t, "H1", recs[2].GateNumber)
	assert.GreaterOrEqual(t, recs[0].TotalScore, recs[1].TotalScore)
	assert.GreaterOrEqual(t, recs[1].TotalScore, recs[2].TotalScore)
}

func TestGenerateStableOrderOnTies(t *testing.T) {
	// Two identical contact gates tie exactly; discovery order wins.
	flights := &fakeFlightSource{flights: map[int64]*models.Flight{1: narrowBodyArrival(1)}}
	gates := &fakeGateSource{gates: []models.Gate{standardGate(1, "A1"), standardGate(2, "A2")}}
	store := &fakeRecommendationStore{}

	recs, err := newTestEngine(flights, gates, store).Generate(context.Background(), []int64{1})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "A1", recs[0].GateNumber)
	assert.Equal(t, "A2", recs[1].GateNumber)
}

func TestGenerateSkipsMissingFlights(t *testing.T) {
	flights := &fakeFlightSource{flights: map[int64]*models.Flight{2: narrowBodyArrival(2)}}
	gates := &fakeGateSource{gates: []models.Gate{standardGate(1, "A1")}}
	store := &fakeRecommendationStore{}

	recs, err := newTestEngine(flights, gates, store).Generate(context.Background(), []int64{1, 2, 99})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(2), recs[0].FlightID)
}

func TestGenerateNoAvailableGatesIsNotAnError(t *testing.T) {
	occupied := *narrowBodyArrival(7)
	occupied.AssignedGate = "A1"

	flights := &fakeFlightSource{
		flights: map[int64]*models.Flight{1: narrowBodyArrival(1)},
		active:  []models.Flight{occupied},
	}
	gates := &fakeGateSource{gates: []models.Gate{standardGate(1, "A1")}}
	store := &fakeRecommendationStore{}

	recs, err := newTestEngine(flights, gates, store).Generate(context.Background(), []int64{1})
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, 1, store.calls, "empty batch still replaces prior recommendations")
}

func TestGenerateReplacesForRequestedFlightIDs(t *testing.T) {
	flights := &fakeFlightSource{flights: map[int64]*models.Flight{1: narrowBodyArrival(1)}}
	gates := &fakeGateSource{gates: []models.Gate{standardGate(1, "A1")}}
	store := &fakeRecommendationStore{}

	_, err := newTestEngine(flights, gates, store).Generate(context.Background(), []int64{1, 5})
	require.NoError(t, err)

	// The missing flight 5 produced nothing, but its stale stored
	// recommendations are still superseded.
	assert.Equal(t, []int64{1, 5}, store.flightIDs)
	assert.Len(t, store.recs, 1)
}

func TestGeneratePersistFailurePropagates(t *testing.T) {
	flights := &fakeFlightSource{flights: map[int64]*models.Flight{1: narrowBodyArrival(1)}}
	gates := &fakeGateSource{gates: []models.Gate{standardGate(1, "A1")}}
	store := &fakeRecommendationStore{err: errors.New("connection reset")}

	recs, err := newTestEngine(flights, gates, store).Generate(context.Background(), []int64{1})
	assert.Error(t, err)
	assert.Nil(t, recs)
}

func TestGenerateGateSourceFailurePropagates(t *testing.T) {
	flights := &fakeFlightSource{flights: map[int64]*models.Flight{1: narrowBodyArrival(1)}}
	gates := &fakeGateSource{err: errors.New("timeout")}
	store := &fakeRecommendationStore{}

	_, err := newTestEngine(flights, gates, store).Generate(context.Background(), []int64{1})
	assert.Error(t, err)
	assert.Zero(t, store.calls)
}

func TestUpdateWeightsRejectedKeepsPrevious(t *testing.T) {
	e := newTestEngine(&fakeFlightSource{}, &fakeGateSource{}, &fakeRecommendationStore{})

	bad := Weights{DimCompatibility: 0.6, DimTurnaround: 0.3, DimDistance: 0.2}
	err := e.UpdateWeights(bad)
	assert.Error(t, err)
	assert.Equal(t, DefaultWeights(), e.ActiveWeights())
}

func TestUpdateWeightsReplacesWholesale(t *testing.T) {
	e := newTestEngine(&fakeFlightSource{}, &fakeGateSource{}, &fakeRecommendationStore{})

	next := Weights{DimCompatibility: 0.4, DimTurnaround: 0.4, DimDistance: 0.2}
	require.NoError(t, e.UpdateWeights(next))
	assert.Equal(t, next, e.ActiveWeights())
}

func TestNewFallsBackToDefaultWeights(t *testing.T) {
	e := New(&fakeFlightSource{}, &fakeGateSource{}, &fakeRecommendationStore{},
		Weights{DimCompatibility: 2}, logger.NewNoOpLogger())
	assert.Equal(t, DefaultWeights(), e.ActiveWeights())
}
