// internal/api/handlers_recommendations.go
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/VivekSamant23/Gate-Reassignment/internal/common/errors"
	"github.com/VivekSamant23/Gate-Reassignment/internal/search"
)

type generateRequest struct {
	FlightIDs []int64 `json:"flight_ids" binding:"required,min=1"`
}

func (s *Server) handleGenerateRecommendations(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewFlightValidationError("flight_ids must be a non-empty integer array"))
		return
	}

	if max := s.cfg.Engine.MaxBatchSize; max > 0 && len(req.FlightIDs) > max {
		respondError(c, apperrors.NewFlightValidationError(
			fmt.Sprintf("batch of %d flights exceeds the limit of %d", len(req.FlightIDs), max)))
		return
	}

	recs, err := s.engine.Generate(c.Request.Context(), req.FlightIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	if s.audit != nil {
		s.audit.IndexBatch(c.Request.Context(), recs)
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"count":           len(recs),
		"weights":         s.engine.ActiveWeights(),
	})
}

func (s *Server) handleFlightRecommendations(c *gin.Context) {
	flightID, err := strconv.ParseInt(c.Param("flightId"), 10, 64)
	if err != nil {
		respondError(c, apperrors.NewFlightValidationError("flight id must be an integer"))
		return
	}

	recs, err := s.recs.ForFlight(c.Request.Context(), flightID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs, "count": len(recs)})
}

func (s *Server) handleRecommendationHistory(c *gin.Context) {
	if s.history == nil {
		respondError(c, apperrors.NewSearchQueryFailedError(
			fmt.Errorf("recommendation history is not enabled")))
		return
	}

	query := search.HistoryQuery{GateNumber: c.Query("gate")}
	if raw := c.Query("flight_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, apperrors.NewFlightValidationError("flight_id must be an integer"))
			return
		}
		query.FlightID = id
	}
	if raw := c.Query("from"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, apperrors.NewFlightValidationError("from must be RFC3339"))
			return
		}
		query.From = ts
	}
	if raw := c.Query("to"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, apperrors.NewFlightValidationError("to must be RFC3339"))
			return
		}
		query.To = ts
	}
	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			respondError(c, apperrors.NewFlightValidationError("size must be a positive integer"))
			return
		}
		query.Size = size
	}

	docs, err := s.history.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": docs, "count": len(docs)})
}

type assignment struct {
	FlightID int64  `json:"flight_id" binding:"required"`
	NewGate  string `json:"new_gate" binding:"required"`
}

type assignRequest struct {
	Assignments []assignment `json:"assignments" binding:"required,min=1"`
}

type assignmentOutcome struct {
	FlightID int64  `json:"flight_id"`
	Gate     string `json:"gate"`
	Assigned bool   `json:"assigned"`
	Error    string `json:"error,omitempty"`
}

// handleAssignGates confirms operator gate choices. Each assignment is
// validated and applied independently; the response reports per-item
// outcomes.
func (s *Server) handleAssignGates(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewAssignmentInvalidError(
			"assignments must be a non-empty array of {flight_id, new_gate}"))
		return
	}

	ctx := c.Request.Context()
	outcomes := make([]assignmentOutcome, 0, len(req.Assignments))
	assigned := 0

	for _, a := range req.Assignments {
		outcome := assignmentOutcome{FlightID: a.FlightID, Gate: a.NewGate}

		flight, err := s.flights.FlightByID(ctx, a.FlightID)
		if err != nil {
			outcome.Error = apperrors.Normalize(apperrors.NewFlightNotFoundError(a.FlightID)).Message
			outcomes = append(outcomes, outcome)
			continue
		}

		if _, err := s.gates.GateByNumber(ctx, a.NewGate); err != nil {
			outcome.Error = "gate not found"
			outcomes = append(outcomes, outcome)
			continue
		}

		previousGate := flight.AssignedGate
		if err := s.flights.AssignGate(ctx, a.FlightID, a.NewGate); err != nil {
			outcome.Error = apperrors.Normalize(err).Message
			outcomes = append(outcomes, outcome)
			continue
		}

		if err := s.recs.MarkAccepted(ctx, a.FlightID, a.NewGate); err != nil {
			// Assignment already landed; the stale recommendation
			// status is repaired on the next generation run.
			s.logger.Warn("recommendation status update failed", map[string]interface{}{
				"flightId": a.FlightID,
				"error":    err.Error(),
			})
		}

		if s.notifier != nil {
			s.notifier.GateAssigned(ctx, flight, a.NewGate, previousGate)
		}

		outcome.Assigned = true
		outcomes = append(outcomes, outcome)
		assigned++
	}

	status := http.StatusOK
	if assigned == 0 {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"assignments": outcomes, "assigned": assigned})
}
