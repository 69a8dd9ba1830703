// internal/engine/availability_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

func narrowBodyArrival(id int64) *models.Flight {
	return &models.Flight{
		ID:            id,
		FlightNumber:  "AA123",
		ScheduledDate: "2024-01-01",
		ScheduledTime: "10:00:00",
		AircraftType:  models.AircraftNarrowBody,
		FlightType:    models.FlightTypeArrival,
		Status:        models.FlightStatusScheduled,
	}
}

func standardGate(id int64, number string) models.Gate {
	return models.Gate{
		ID:                id,
		GateNumber:        number,
		GateType:          models.GateTypeGate,
		MaxAircraft:       1,
		AircraftTypes:     []string{models.AircraftNarrowBody},
		IsActive:          true,
		MaintenanceStatus: models.MaintenanceAvailable,
	}
}

func TestAvailableGatesFiltersInactive(t *testing.T) {
	flight := narrowBodyArrival(1)
	gate := standardGate(1, "A1")
	gate.IsActive = false

	got := AvailableGates(flight, []models.Gate{gate}, nil)
	assert.Empty(t, got)
}

func TestAvailableGatesFiltersMaintenance(t *testing.T) {
	flight := narrowBodyArrival(1)
	gate := standardGate(1, "A1")
	gate.MaintenanceStatus = models.MaintenanceScheduled

	got := AvailableGates(flight, []models.Gate{gate}, nil)
	assert.Empty(t, got)
}

func TestAvailableGatesFiltersIncompatibleAircraft(t *testing.T) {
	flight := narrowBodyArrival(1)
	flight.AircraftType = models.AircraftWideBody
	gate := standardGate(1, "A1") // narrow_body only

	got := AvailableGates(flight, []models.Gate{gate}, nil)
	assert.Empty(t, got)
}

func TestAvailableGatesExactTypeMembership(t *testing.T) {
	// "body" is a substring of "narrow_body" but not a member of the
	// compatible set, so the gate must be rejected.
	flight := narrowBodyArrival(1)
	flight.AircraftType = "body"
	gate := standardGate(1, "A1")

	got := AvailableGates(flight, []models.Gate{gate}, nil)
	assert.Empty(t, got)
}

func TestAvailableGatesOpenGateAccepted(t *testing.T) {
	flight := narrowBodyArrival(1)
	gate := standardGate(1, "A1")

	got := AvailableGates(flight, []models.Gate{gate}, nil)
	assert.Len(t, got, 1)
	assert.Equal(t, "A1", got[0].GateNumber)
}

func TestStandardGateBlockedByOneOccupant(t *testing.T) {
	flight := narrowBodyArrival(1)
	gate := standardGate(1, "A1")

	occupant := *narrowBodyArrival(2)
	occupant.AssignedGate = "A1"

	got := AvailableGates(flight, []models.Gate{gate}, []models.Flight{occupant})
	assert.Empty(t, got)
}

func TestOccupancyIgnoresCandidateItself(t *testing.T) {
	flight := narrowBodyArrival(1)
	flight.AssignedGate = "A1"
	gate := standardGate(1, "A1")

	// The only "occupant" is the candidate flight itself.
	got := AvailableGates(flight, []models.Gate{gate}, []models.Flight{*flight})
	assert.Len(t, got, 1)
}

func TestOccupancyIgnoresOtherDates(t *testing.T) {
	flight := narrowBodyArrival(1)
	gate := standardGate(1, "A1")

	occupant := *narrowBodyArrival(2)
	occupant.AssignedGate = "A1"
	occupant.ScheduledDate = "2024-01-02"

	got := AvailableGates(flight, []models.Gate{gate}, []models.Flight{occupant})
	assert.Len(t, got, 1)
}

func TestOccupancyIgnoresOtherFlightTypes(t *testing.T) {
	flight := narrowBodyArrival(1)
	gate := standardGate(1, "A1")

	occupant := *narrowBodyArrival(2)
	occupant.AssignedGate = "A1"
	occupant.FlightType = models.FlightTypeDeparture

	got := AvailableGates(flight, []models.Gate{gate}, []models.Flight{occupant})
	assert.Len(t, got, 1)
}

func TestOccupancyIgnoresTerminalStatuses(t *testing.T) {
	flight := narrowBodyArrival(1)
	gate := standardGate(1, "A1")

	departed := *narrowBodyArrival(2)
	departed.AssignedGate = "A1"
	departed.Status = models.FlightStatusDeparted

	cancelled := *narrowBodyArrival(3)
	cancelled.AssignedGate = "A1"
	cancelled.Status = models.FlightStatusCancelled

	got := AvailableGates(flight, []models.Gate{gate}, []models.Flight{departed, cancelled})
	assert.Len(t, got, 1)
}

func TestDelayedOccupantStillBlocks(t *testing.T) {
	flight := narrowBodyArrival(1)
	gate := standardGate(1, "A1")

	occupant := *narrowBodyArrival(2)
	occupant.AssignedGate = "A1"
	occupant.Status = models.FlightStatusDelayed

	got := AvailableGates(flight, []models.Gate{gate}, []models.Flight{occupant})
	assert.Empty(t, got)
}

func TestHangarAvailableBelowCapacity(t *testing.T) {
	flight := narrowBodyArrival(1)
	hangar := standardGate(1, "H1")
	hangar.GateType = models.GateTypeHangar
	hangar.MaxAircraft = 3

	occupants := make([]models.Flight, 0, 2)
	for i := int64(2); i <= 3; i++ {
		f := *narrowBodyArrival(i)
		f.AssignedGate = "H1"
		occupants = append(occupants, f)
	}

	got := AvailableGates(flight, []models.Gate{hangar}, occupants)
	assert.Len(t, got, 1, "occupancy 2 of 3 should still be available")
}

func TestHangarBlockedAtCapacity(t *testing.T) {
	flight := narrowBodyArrival(1)
	hangar := standardGate(1, "H1")
	hangar.GateType = models.GateTypeHangar
	hangar.MaxAircraft = 3

	occupants := make([]models.Flight, 0, 3)
	for i := int64(2); i <= 4; i++ {
		f := *narrowBodyArrival(i)
		f.AssignedGate = "H1"
		occupants = append(occupants, f)
	}

	got := AvailableGates(flight, []models.Gate{hangar}, occupants)
	assert.Empty(t, got, "occupancy 3 of 3 must never be offered")
}

func TestRampSingleCapacityBehavesLikeStandardGate(t *testing.T) {
	// A ramp with max_aircraft == 1 does not get the multi-aircraft
	// rule; a single occupant blocks it.
	flight := narrowBodyArrival(1)
	ramp := standardGate(1, "R1")
	ramp.GateType = models.GateTypeRamp
	ramp.MaxAircraft = 1

	occupant := *narrowBodyArrival(2)
	occupant.AssignedGate = "R1"

	got := AvailableGates(flight, []models.Gate{ramp}, []models.Flight{occupant})
	assert.Empty(t, got)
}
