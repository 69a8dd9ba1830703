// internal/models/flight.go
package models

import "time"

// Flight statuses.
const (
	FlightStatusScheduled = "scheduled"
	FlightStatusDelayed   = "delayed"
	FlightStatusDeparted  = "departed"
	FlightStatusArrived   = "arrived"
	FlightStatusCancelled = "cancelled"
)

// Flight types.
const (
	FlightTypeArrival   = "arrival"
	FlightTypeDeparture = "departure"
)

// Aircraft type categories.
const (
	AircraftNarrowBody = "narrow_body"
	AircraftWideBody   = "wide_body"
)

// Flight is a single scheduled movement. ScheduledDate is a plain
// YYYY-MM-DD string and ScheduledTime a HH:MM:SS string; occupancy
// conflict checks compare dates by string equality.
type Flight struct {
	ID                   int64  `json:"id"`
	FlightNumber         string `json:"flight_number"`
	ScheduledDate        string `json:"scheduled_date"`
	ScheduledTime        string `json:"scheduled_time"`
	AircraftRegistration string `json:"aircraft_registration"`
	AircraftType         string `json:"aircraft_type"`

	NewPosition  string `json:"new_position"`
	OldPosition  string `json:"old_position"`
	AssignedGate string `json:"assigned_gate"`
	PlannedGate  string `json:"planned_gate"`

	// Arrival movement times.
	ALDT *time.Time `json:"aldt"` // Actual Landing Time
	AIBT *time.Time `json:"aibt"` // Actual In-Block Time
	ELDT *time.Time `json:"eldt"` // Estimated Landing Time
	EIBT *time.Time `json:"eibt"` // Estimated In-Block Time

	// Departure movement times.
	AOBT *time.Time `json:"aobt"` // Actual Off-Block Time
	ATOT *time.Time `json:"atot"` // Actual Take-off Time
	TOBT *time.Time `json:"tobt"` // Target Off-Block Time
	TTOT *time.Time `json:"ttot"` // Target Take-off Time

	FlightType string `json:"flight_type"`
	Status     string `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the flight still occupies (or will occupy)
// its assigned gate for conflict purposes.
func (f *Flight) IsActive() bool {
	return f.Status == FlightStatusScheduled || f.Status == FlightStatusDelayed
}
