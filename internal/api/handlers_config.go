// internal/api/handlers_config.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/VivekSamant23/Gate-Reassignment/internal/common/errors"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/validation"
	"github.com/VivekSamant23/Gate-Reassignment/internal/engine"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

func (s *Server) handleListConfig(c *gin.Context) {
	if key := c.Query("key"); key != "" {
		row, err := s.configs.Get(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, engine.ErrNotFound) {
				respondError(c, apperrors.NewConfigNotFoundError(key))
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"config": row})
		return
	}

	rows, err := s.configs.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": rows, "count": len(rows)})
}

type configRequest struct {
	ConfigKey   string `json:"config_key" binding:"required"`
	ConfigValue string `json:"config_value" binding:"required"`
	ConfigType  string `json:"config_type"`
	Description string `json:"description"`
}

// handleUpsertConfig stores a config row. Posting optimization_weights
// additionally validates the payload against the weights schema and
// swaps the engine's active weight set; on rejection nothing is stored
// and the prior weights stay in effect.
func (s *Server) handleUpsertConfig(c *gin.Context) {
	var req configRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewFlightValidationError("config_key and config_value are required"))
		return
	}

	if req.ConfigKey == models.ConfigKeyOptimizationWeights {
		s.updateWeights(c, req.ConfigValue)
		return
	}

	if req.ConfigType == "" {
		req.ConfigType = models.ConfigTypeString
	}

	row := &models.AirportConfig{
		ConfigKey:   req.ConfigKey,
		ConfigValue: req.ConfigValue,
		ConfigType:  req.ConfigType,
		Description: req.Description,
	}
	if err := s.configs.Upsert(c.Request.Context(), row); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": row})
}

func (s *Server) updateWeights(c *gin.Context, rawValue string) {
	var document map[string]interface{}
	if err := json.Unmarshal([]byte(rawValue), &document); err != nil {
		respondError(c, apperrors.NewWeightsInvalidError("config_value must be a JSON object"))
		return
	}
	if err := validation.ValidateDocument(document, validation.WeightsSchema()); err != nil {
		respondError(c, apperrors.NewWeightsInvalidError(err.Error()))
		return
	}

	weights := engine.Weights{}
	for dim, value := range document {
		weight, ok := value.(float64)
		if !ok {
			respondError(c, apperrors.NewWeightsInvalidError("weights must be numbers"))
			return
		}
		weights[dim] = weight
	}

	if err := s.engine.UpdateWeights(weights); err != nil {
		respondError(c, err)
		return
	}

	if err := s.configs.SaveWeights(c.Request.Context(), weights); err != nil {
		// The engine already switched; persisting is retried by the
		// operator. Report the failure rather than silently diverging.
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"weights": weights})
}
