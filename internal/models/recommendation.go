// internal/models/recommendation.go
package models

import "time"

// Recommendation statuses.
const (
	RecommendationRecommended = "recommended"
	RecommendationAccepted    = "accepted"
	RecommendationRejected    = "rejected"
)

// Recommendation is one scored (flight, gate) pairing. Recommendations
// are a derived cache: regenerating for a flight supersedes everything
// previously stored for that flight.
type Recommendation struct {
	ID         int64  `json:"id"`
	FlightID   int64  `json:"flight_id"`
	GateID     int64  `json:"gate_id"`
	GateNumber string `json:"gate_number"`

	CompatibilityScore float64 `json:"compatibility_score"`
	TurnaroundScore    float64 `json:"turnaround_score"`
	DistanceScore      float64 `json:"distance_score"`
	TotalScore         float64 `json:"total_score"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
