// internal/store/postgres/config.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	apperrors "github.com/VivekSamant23/Gate-Reassignment/internal/common/errors"
	"github.com/VivekSamant23/Gate-Reassignment/internal/engine"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

// ConfigRepo persists airport_config key/value rows.
type ConfigRepo struct {
	db *sql.DB
}

func NewConfigRepo(db *sql.DB) *ConfigRepo {
	return &ConfigRepo{db: db}
}

// Get returns one config row or engine.ErrNotFound.
func (r *ConfigRepo) Get(ctx context.Context, key string) (*models.AirportConfig, error) {
	var c models.AirportConfig
	var description sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT id, config_key, config_value, config_type, description, created_at, updated_at
		 FROM airport_config WHERE config_key = $1`, key).
		Scan(&c.ID, &c.ConfigKey, &c.ConfigValue, &c.ConfigType, &description, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("config-get", err)
	}
	c.Description = description.String
	return &c, nil
}

// All returns every config row ordered by key.
func (r *ConfigRepo) All(ctx context.Context) ([]models.AirportConfig, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, config_key, config_value, config_type, description, created_at, updated_at
		 FROM airport_config ORDER BY config_key`)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("config-all", err)
	}
	defer rows.Close()

	configs := []models.AirportConfig{}
	for rows.Next() {
		var c models.AirportConfig
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.ConfigKey, &c.ConfigValue, &c.ConfigType,
			&description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("config-scan", err)
		}
		c.Description = description.String
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("config-rows", err)
	}
	return configs, nil
}

// Upsert inserts or replaces a config row by key.
func (r *ConfigRepo) Upsert(ctx context.Context, c *models.AirportConfig) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO airport_config (config_key, config_value, config_type, description)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (config_key) DO UPDATE SET
			config_value = EXCLUDED.config_value,
			config_type = EXCLUDED.config_type,
			description = EXCLUDED.description,
			updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		c.ConfigKey, c.ConfigValue, c.ConfigType, c.Description,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("config-upsert", err)
	}
	return nil
}

// LoadWeights reads the stored optimization weights. A missing row is
// not an error; the engine defaults apply and (nil, nil) is returned.
func (r *ConfigRepo) LoadWeights(ctx context.Context) (engine.Weights, error) {
	row, err := r.Get(ctx, models.ConfigKeyOptimizationWeights)
	if errors.Is(err, engine.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var weights engine.Weights
	if err := json.Unmarshal([]byte(row.ConfigValue), &weights); err != nil {
		return nil, apperrors.NewWeightsInvalidError("stored optimization_weights is not valid JSON: " + err.Error())
	}
	return weights, nil
}

// SaveWeights writes the weight set back as the optimization_weights
// JSON config row.
func (r *ConfigRepo) SaveWeights(ctx context.Context, weights engine.Weights) error {
	raw, err := json.Marshal(weights)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return r.Upsert(ctx, &models.AirportConfig{
		ConfigKey:   models.ConfigKeyOptimizationWeights,
		ConfigValue: string(raw),
		ConfigType:  models.ConfigTypeJSON,
		Description: "Scoring weights for gate recommendations",
	})
}
