// cmd/gate-advisor/seed.go
package main

import (
	"context"
	"errors"

	"github.com/VivekSamant23/Gate-Reassignment/internal/common/config"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/logger"
	"github.com/VivekSamant23/Gate-Reassignment/internal/engine"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
	"github.com/VivekSamant23/Gate-Reassignment/internal/store/postgres"
)

func floatPtr(v float64) *float64 { return &v }

// defaultGates is the bootstrap layout for a fresh installation: five
// contact gates across two terminals, a hangar that parks three
// aircraft and a two-slot remote ramp.
func defaultGates() []models.Gate {
	return []models.Gate{
		{GateNumber: "A1", GateType: models.GateTypeGate, MaxAircraft: 1,
			AircraftTypes: []string{models.AircraftNarrowBody},
			Terminal:      "A", CoordinatesX: floatPtr(100), CoordinatesY: floatPtr(50)},
		{GateNumber: "A2", GateType: models.GateTypeGate, MaxAircraft: 1,
			AircraftTypes: []string{models.AircraftNarrowBody},
			Terminal:      "A", CoordinatesX: floatPtr(200), CoordinatesY: floatPtr(50)},
		{GateNumber: "A3", GateType: models.GateTypeGate, MaxAircraft: 1,
			AircraftTypes: []string{models.AircraftWideBody, models.AircraftNarrowBody},
			Terminal:      "A", CoordinatesX: floatPtr(300), CoordinatesY: floatPtr(50)},
		{GateNumber: "B1", GateType: models.GateTypeGate, MaxAircraft: 1,
			AircraftTypes: []string{models.AircraftNarrowBody},
			Terminal:      "B", CoordinatesX: floatPtr(100), CoordinatesY: floatPtr(150)},
		{GateNumber: "B2", GateType: models.GateTypeGate, MaxAircraft: 1,
			AircraftTypes: []string{models.AircraftWideBody},
			Terminal:      "B", CoordinatesX: floatPtr(200), CoordinatesY: floatPtr(150)},
		{GateNumber: "H1", GateType: models.GateTypeHangar, MaxAircraft: 3,
			AircraftTypes: []string{models.AircraftWideBody, models.AircraftNarrowBody},
			Terminal:      "H", CoordinatesX: floatPtr(400), CoordinatesY: floatPtr(100)},
		{GateNumber: "R1", GateType: models.GateTypeRamp, MaxAircraft: 2,
			AircraftTypes: []string{models.AircraftNarrowBody},
			Terminal:      "R", CoordinatesX: floatPtr(500), CoordinatesY: floatPtr(100)},
	}
}

// seedDefaults provisions gates and the scoring-weight config row on
// first boot. Existing rows are never touched, so a restarted service
// keeps whatever the operators have configured since.
func seedDefaults(ctx context.Context, gates *postgres.GateRepo, configs *postgres.ConfigRepo, cfg *config.Config, log logger.Logger) error {
	count, err := gates.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		layout := defaultGates()
		for _, gate := range layout {
			gate.IsActive = true
			gate.MaintenanceStatus = models.MaintenanceAvailable
			if err := gates.Create(ctx, &gate); err != nil {
				return err
			}
		}
		log.Info("seeded default gates", map[string]interface{}{"count": len(layout)})
	}

	if _, err := configs.Get(ctx, models.ConfigKeyOptimizationWeights); err != nil {
		if !errors.Is(err, engine.ErrNotFound) {
			return err
		}
		weights := engine.Weights(cfg.Engine.DefaultWeights)
		if len(weights) == 0 {
			weights = engine.DefaultWeights()
		}
		if err := configs.SaveWeights(ctx, weights); err != nil {
			return err
		}
		log.Info("seeded default scoring weights", map[string]interface{}{"weights": weights})
	}

	return nil
}
