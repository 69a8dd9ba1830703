// internal/models/airport_config.go
package models

import "time"

// Config value types.
const (
	ConfigTypeString  = "string"
	ConfigTypeNumber  = "number"
	ConfigTypeBoolean = "boolean"
	ConfigTypeJSON    = "json"
)

// Well-known config keys.
const (
	ConfigKeyAODBAPI             = "aodb_api"
	ConfigKeyGMSAPI              = "gms_api"
	ConfigKeyOptimizationWeights = "optimization_weights"
)

// AirportConfig is a single key/value row of operational configuration
// (external API endpoints, optimization weights, ...).
type AirportConfig struct {
	ID          int64  `json:"id"`
	ConfigKey   string `json:"config_key"`
	ConfigValue string `json:"config_value"`
	ConfigType  string `json:"config_type"`
	Description string `json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
