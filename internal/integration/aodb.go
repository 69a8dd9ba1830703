// internal/integration/aodb.go
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

// AODBClient fetches the schedule from the Airport Operational
// Database. Without a configured base URL it serves a small built-in
// sample schedule, which keeps local development working with no
// upstream system.
type AODBClient struct {
	baseURL string
	apiKey  string
	client  *httpclient.Client
	logger  logger.Logger
}

func NewAODBClient(cfg config.ExternalAPIConfig, log logger.Logger) *AODBClient {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AODBClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpclient.NewClient(timeout),
		logger:  log.WithFields(map[string]interface{}{"component": "aodb-client"}),
	}
}

func (c *AODBClient) Name() string { return "aodb" }

func (c *AODBClient) FetchFlights(ctx context.Context, date string) ([]models.Flight, error) {
	if c.baseURL == "" {
		c.logger.Debug("no AODB endpoint configured, serving sample schedule", map[string]interface{}{
			"date": date,
		})
		return sampleAODBFlights(date), nil
	}

	endpoint := fmt.Sprintf("%s/api/flights?date=%s", c.baseURL, url.QueryEscape(date))

	var payload struct {
		Flights []models.Flight `json:"flights"`
	}
	if err := c.client.GetJSON(ctx, endpoint, c.apiKey, &payload); err != nil {
		return nil, apperrors.NewExternalFetchFailedError(c.Name(), err)
	}

	for i := range payload.Flights {
		if payload.Flights[i].ScheduledDate == "" {
			payload.Flights[i].ScheduledDate = date
		}
	}
	return payload.Flights, nil
}

// sampleAODBFlights mirrors a typical morning bank: four arrivals and
// one departure, mixed aircraft categories.
func sampleAODBFlights(date string) []models.Flight {
	build := func(number, scheduledTime, registration, aircraftType, flightType string) models.Flight {
		return models.Flight{
			FlightNumber:         number,
			ScheduledDate:        date,
			ScheduledTime:        scheduledTime,
			AircraftRegistration: registration,
			AircraftType:         aircraftType,
			FlightType:           flightType,
			Status:               models.FlightStatusScheduled,
		}
	}
	return []models.Flight{
		build("AA123", "08:15:00", "N801AA", models.AircraftNarrowBody, models.FlightTypeArrival),
		build("UA456", "08:40:00", "N77012", models.AircraftWideBody, models.FlightTypeArrival),
		build("DL789", "09:05:00", "N901DL", models.AircraftNarrowBody, models.FlightTypeArrival),
		build("SW321", "09:30:00", "N8523S", models.AircraftNarrowBody, models.FlightTypeDeparture),
		build("BA654", "10:00:00", "G-XWBA", models.AircraftWideBody, models.FlightTypeArrival),
	}
}
