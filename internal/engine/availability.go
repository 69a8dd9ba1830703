// internal/engine/availability.go
package engine

import "github.com/VivekSamant23/Gate-Reassignment/internal/models"

// AvailableGates returns the subset of allGates that can host the
// flight: active, not under maintenance, compatible with the aircraft
// type, and not fully occupied by other flights on the same date with
// the same flight type.
//
// Occupancy is same-date plus same-flight-type matching only; actual
// scheduled times are not compared. Two flights hours apart at one gate
// conflict exactly like two flights minutes apart.
func AvailableGates(flight *models.Flight, allGates []models.Gate, allFlights []models.Flight) []models.Gate {
	available := make([]models.Gate, 0, len(allGates))

	for _, gate := range allGates {
		if !gate.IsActive {
			continue
		}
		if gate.MaintenanceStatus != models.MaintenanceAvailable {
			continue
		}
		if !gate.SupportsAircraft(flight.AircraftType) {
			continue
		}
		if !hasCapacity(&gate, flight, allFlights) {
			continue
		}
		available = append(available, gate)
	}

	return available
}

// hasCapacity checks the occupancy constraint for one gate. Hangars and
// ramps configured for multiple aircraft are available while occupancy
// stays below MaxAircraft; every other gate takes a single aircraft.
func hasCapacity(gate *models.Gate, flight *models.Flight, allFlights []models.Flight) bool {
	occupancy := gateOccupancy(gate, flight, allFlights)

	if (gate.GateType == models.GateTypeHangar || gate.GateType == models.GateTypeRamp) && gate.MaxAircraft > 1 {
		return occupancy < gate.MaxAircraft
	}

	return occupancy == 0
}

// gateOccupancy counts flights other than the candidate that hold the
// gate on the candidate's date with the candidate's flight type and an
// active status.
func gateOccupancy(gate *models.Gate, flight *models.Flight, allFlights []models.Flight) int {
	count := 0
	for i := range allFlights {
		other := &allFlights[i]
		if other.ID == flight.ID {
			continue
		}
		if other.AssignedGate != gate.GateNumber {
			continue
		}
		if other.ScheduledDate != flight.ScheduledDate {
			continue
		}
		if other.FlightType != flight.FlightType {
			continue
		}
		if !other.IsActive() {
			continue
		}
		count++
	}
	return count
}
