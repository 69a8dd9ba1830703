// internal/integration/fetcher.go

// Package integration pulls flight data into the local schedule from
// external systems: the Airport Operational Database (AODB), the Gate
// Management System (GMS) and operator-uploaded CSV files.
package integration

import (
	"context"

	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

// FlightFetcher fetches the flight schedule for one date from an
// external system.
type FlightFetcher interface {
	// Name identifies the source in logs and metrics ("aodb", "gms").
	Name() string

	// FetchFlights returns the external schedule for the date
	// (YYYY-MM-DD).
	FetchFlights(ctx context.Context, date string) ([]models.Flight, error)
}
