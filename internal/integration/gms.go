// internal/integration/gms.go
package integration

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/VivekSamant23/Gate-Reassignment/internal/common/config"
	apperrors "github.com/VivekSamant23/Gate-Reassignment/internal/common/errors"
	httpclient "github.com/VivekSamant23/Gate-Reassignment/internal/common/http"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/logger"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

// GMSClient fetches flights with their current stand allocations from
// the Gate Management System. Like the AODB client it degrades to a
// built-in sample when no endpoint is configured.
type GMSClient struct {
	baseURL string
	apiKey  string
	client  *httpclient.Client
	logger  logger.Logger
}

func NewGMSClient(cfg config.ExternalAPIConfig, log logger.Logger) *GMSClient {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GMSClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpclient.NewClient(timeout),
		logger:  log.WithFields(map[string]interface{}{"component": "gms-client"}),
	}
}

func (c *GMSClient) Name() string { return "gms" }

func (c *GMSClient) FetchFlights(ctx context.Context, date string) ([]models.Flight, error) {
	if c.baseURL == "" {
		c.logger.Debug("no GMS endpoint configured, serving sample allocations", map[string]interface{}{
			"date": date,
		})
		return sampleGMSFlights(date), nil
	}

	endpoint := fmt.Sprintf("%s/api/allocations?date=%s", c.baseURL, url.QueryEscape(date))

	var payload struct {
		Allocations []models.Flight `json:"allocations"`
	}
	if err := c.client.GetJSON(ctx, endpoint, c.apiKey, &payload); err != nil {
		return nil, apperrors.NewExternalFetchFailedError(c.Name(), err)
	}

	for i := range payload.Allocations {
		if payload.Allocations[i].ScheduledDate == "" {
			payload.Allocations[i].ScheduledDate = date
		}
	}
	return payload.Allocations, nil
}

// sampleGMSFlights overlaps with the AODB sample on AA123 (so the sync
// dedupe path is exercised even against the samples) and adds one
// GMS-only delayed arrival with a stand already allocated.
func sampleGMSFlights(date string) []models.Flight {
	return []models.Flight{
		{
			FlightNumber:         "AA123",
			ScheduledDate:        date,
			ScheduledTime:        "08:15:00",
			AircraftRegistration: "N801AA",
			AircraftType:         models.AircraftNarrowBody,
			FlightType:           models.FlightTypeArrival,
			Status:               models.FlightStatusScheduled,
			AssignedGate:         "A1",
		},
		{
			FlightNumber:         "LH220",
			ScheduledDate:        date,
			ScheduledTime:        "10:45:00",
			AircraftRegistration: "D-AIXP",
			AircraftType:         models.AircraftWideBody,
			FlightType:           models.FlightTypeArrival,
			Status:               models.FlightStatusDelayed,
			AssignedGate:         "B4",
		},
	}
}
