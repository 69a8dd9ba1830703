// internal/common/validation/payloads.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateDocument runs a full JSON-schema validation (draft-04 style)
// against an arbitrary document. Used where the hand-rolled field
// validator is not expressive enough.
func ValidateDocument(document, schema map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	return nil
}

// WeightsSchema validates the optimization_weights config payload:
// exactly the three known dimensions, each a non-negative number.
// Sum-to-1.0 is checked by the engine, not the schema.
func WeightsSchema() map[string]interface{} {
	dimension := map[string]interface{}{
		"type":    "number",
		"minimum": 0,
	}
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"compatibility": dimension,
			"turnaround":    dimension,
			"distance":      dimension,
		},
		"required":             []interface{}{"compatibility", "turnaround", "distance"},
		"additionalProperties": false,
	}
}

// FlightSchema validates manual flight creation payloads and uploaded
// rows after CSV parsing.
func FlightSchema() JSONSchema {
	timePattern := `^\d{2}:\d{2}(:\d{2})?$`
	datePattern := `^\d{4}-\d{2}-\d{2}$`
	one := 1
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"flight_number":         {Type: "string", MinLength: &one},
			"scheduled_date":        {Type: "string", Pattern: &datePattern},
			"scheduled_time":        {Type: "string", Pattern: &timePattern},
			"aircraft_registration": {Type: "string"},
			"aircraft_type":         {Type: "string", Enum: []string{"narrow_body", "wide_body"}},
			"flight_type":           {Type: "string", Enum: []string{"arrival", "departure"}},
			"status":                {Type: "string", Enum: []string{"scheduled", "delayed", "departed", "arrived", "cancelled"}},
			"assigned_gate":         {Type: "string"},
			"planned_gate":          {Type: "string"},
			"new_position":          {Type: "string"},
			"old_position":          {Type: "string"},
		},
		Required:             []string{"flight_number", "scheduled_date", "scheduled_time", "aircraft_type", "flight_type"},
		AdditionalProperties: true,
	}
}
