// internal/models/gate.go
package models

import (
	"strings"
	"time"
)

// Gate categories.
const (
	GateTypeGate   = "gate"
	GateTypeRamp   = "ramp"
	GateTypeHangar = "hangar"
)

// Maintenance statuses.
const (
	MaintenanceAvailable = "available"
	MaintenanceScheduled = "scheduled"
	MaintenanceClosed    = "closed"
)

// Gate is a parking position: a contact gate, a remote ramp stand or a
// hangar. Hangars and ramps may hold several aircraft at once
// (MaxAircraft > 1); contact gates always hold exactly one.
type Gate struct {
	ID         int64  `json:"id"`
	GateNumber string `json:"gate_number"`
	GateType   string `json:"gate_type"`

	MaxAircraft   int      `json:"max_aircraft"`
	AircraftTypes []string `json:"aircraft_types"`

	Terminal  string `json:"terminal"`
	Concourse string `json:"concourse"`

	// Position relative to the terminal reference point, metres.
	// Nil when the gate has not been surveyed.
	CoordinatesX *float64 `json:"coordinates_x"`
	CoordinatesY *float64 `json:"coordinates_y"`

	IsActive          bool   `json:"is_active"`
	MaintenanceStatus string `json:"maintenance_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupportsAircraft reports whether aircraftType is an exact member of
// the gate's compatible types. Membership is token equality, not
// substring matching: "body" must never match "narrow_body".
func (g *Gate) SupportsAircraft(aircraftType string) bool {
	for _, t := range g.AircraftTypes {
		if t == aircraftType {
			return true
		}
	}
	return false
}

// HasCoordinates reports whether both coordinates are present.
func (g *Gate) HasCoordinates() bool {
	return g.CoordinatesX != nil && g.CoordinatesY != nil
}

// ParseAircraftTypes splits the comma-joined storage form into a clean
// slice, dropping empty tokens.
func ParseAircraftTypes(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	types := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			types = append(types, t)
		}
	}
	return types
}

// JoinAircraftTypes is the inverse of ParseAircraftTypes.
func JoinAircraftTypes(types []string) string {
	return strings.Join(types, ",")
}
