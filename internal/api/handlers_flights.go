// internal/api/handlers_flights.go
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/VivekSamant23/Gate-Reassignment/internal/common/errors"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/validation"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

// handleListFlights lists flights, optionally for one date. When a
// requested date has no local flights and a syncer is configured, the
// external sources are pulled once and the listing retried.
func (s *Server) handleListFlights(c *gin.Context) {
	date := c.Query("date")

	flights, err := s.flights.List(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(flights) == 0 && date != "" && s.syncer != nil {
		result, err := s.syncer.Sync(c.Request.Context(), date)
		if err != nil {
			respondError(c, err)
			return
		}
		s.logger.Info("schedule fetched on demand", map[string]interface{}{
			"date":    date,
			"created": result.Created,
		})

		if flights, err = s.flights.List(c.Request.Context(), date); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"flights": flights, "count": len(flights)})
}

func (s *Server) handleCreateFlight(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apperrors.NewFlightValidationError(err.Error()))
		return
	}

	if vr := validation.ValidateInput(payload, validation.FlightSchema()); !vr.Valid {
		respondError(c, apperrors.NewFlightValidationError(
			joinMessages(vr.GetErrorMessages())))
		return
	}

	flight := flightFromPayload(payload)
	if err := s.flights.Create(c.Request.Context(), flight); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"flight": flight})
}

func (s *Server) handleDeleteFlight(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, apperrors.NewFlightValidationError("flight id must be an integer"))
		return
	}

	if err := s.flights.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// handleClearFlights wipes the whole schedule. Administrative reset
// used between operational days and in test environments.
func (s *Server) handleClearFlights(c *gin.Context) {
	deleted, err := s.flights.DeleteAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	s.logger.Warn("flight schedule cleared", map[string]interface{}{
		"deleted":   deleted,
		"requestId": c.GetString("requestId"),
	})
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func flightFromPayload(payload map[string]interface{}) *models.Flight {
	str := func(key string) string {
		v, _ := payload[key].(string)
		return v
	}
	return &models.Flight{
		FlightNumber:         str("flight_number"),
		ScheduledDate:        str("scheduled_date"),
		ScheduledTime:        str("scheduled_time"),
		AircraftRegistration: str("aircraft_registration"),
		AircraftType:         str("aircraft_type"),
		FlightType:           str("flight_type"),
		Status:               str("status"),
		AssignedGate:         str("assigned_gate"),
		PlannedGate:          str("planned_gate"),
		NewPosition:          str("new_position"),
		OldPosition:          str("old_position"),
	}
}

func joinMessages(msgs []string) string {
	out := ""
	for i, m := range msgs {
		if i > 0 {
			out += "; "
		}
		out += m
	}
	return out
}
