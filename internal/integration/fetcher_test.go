// internal/integration/fetcher_test.go
package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VivekSamant23/Gate-Reassignment/internal/common/config"
	apperrors "github.com/VivekSamant23/Gate-Reassignment/internal/common/errors"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/logger"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

func TestAODBFetchFromEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/flights", r.URL.Path)
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("date"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"flights":[
			{"flight_number":"AA123","scheduled_time":"08:15:00",
			 "aircraft_type":"narrow_body","flight_type":"arrival","status":"scheduled"}
		]}`))
	}))
	defer server.Close()

	client := NewAODBClient(config.ExternalAPIConfig{
		BaseURL: server.URL,
		APIKey:  "secret",
	}, logger.NewNoOpLogger())

	flights, err := client.FetchFlights(context.Background(), "2024-01-01")
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "AA123", flights[0].FlightNumber)
	// Missing dates are filled in with the requested date.
	assert.Equal(t, "2024-01-01", flights[0].ScheduledDate)
}

func TestAODBFetchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewAODBClient(config.ExternalAPIConfig{BaseURL: server.URL}, logger.NewNoOpLogger())

	_, err := client.FetchFlights(context.Background(), "2024-01-01")
	assert.ErrorIs(t, err, &apperrors.StandardError{Code: apperrors.ErrCodeExternalFetchFailed})
}

func TestAODBSampleScheduleWithoutEndpoint(t *testing.T) {
	client := NewAODBClient(config.ExternalAPIConfig{}, logger.NewNoOpLogger())

	flights, err := client.FetchFlights(context.Background(), "2024-01-01")
	require.NoError(t, err)
	require.Len(t, flights, 5)
	for _, f := range flights {
		assert.Equal(t, "2024-01-01", f.ScheduledDate)
		assert.NotEmpty(t, f.FlightNumber)
		assert.NotEmpty(t, f.AircraftType)
	}
}

func TestGMSFetchFromEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/allocations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"allocations":[
			{"flight_number":"LH220","scheduled_date":"2024-01-01","scheduled_time":"10:45:00",
			 "aircraft_type":"wide_body","flight_type":"arrival","status":"delayed","assigned_gate":"B4"}
		]}`))
	}))
	defer server.Close()

	client := NewGMSClient(config.ExternalAPIConfig{BaseURL: server.URL}, logger.NewNoOpLogger())

	flights, err := client.FetchFlights(context.Background(), "2024-01-01")
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "B4", flights[0].AssignedGate)
	assert.Equal(t, models.FlightStatusDelayed, flights[0].Status)
}

func TestGMSSampleOverlapsAODBSample(t *testing.T) {
	// The samples share AA123 so a sync over both exercises the dedupe
	// path even in mock mode.
	aodb := NewAODBClient(config.ExternalAPIConfig{}, logger.NewNoOpLogger())
	gms := NewGMSClient(config.ExternalAPIConfig{}, logger.NewNoOpLogger())

	aodbFlights, err := aodb.FetchFlights(context.Background(), "2024-01-01")
	require.NoError(t, err)
	gmsFlights, err := gms.FetchFlights(context.Background(), "2024-01-01")
	require.NoError(t, err)

	numbers := map[string]bool{}
	for _, f := range aodbFlights {
		numbers[f.FlightNumber] = true
	}
	overlap := false
	for _, f := range gmsFlights {
		if numbers[f.FlightNumber] {
			overlap = true
		}
	}
	assert.True(t, overlap)
}
