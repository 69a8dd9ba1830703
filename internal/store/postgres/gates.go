// internal/store/postgres/gates.go
package postgres

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/VivekSamant23/Gate-Reassignment/internal/common/errors"
	"github.com/VivekSamant23/Gate-Reassignment/internal/engine"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

const gateColumns = `id, gate_number, gate_type, max_aircraft, aircraft_types,
		terminal, concourse, coordinates_x, coordinates_y,
		is_active, maintenance_status, created_at, updated_at`

// GateRepo persists gates in Postgres. Aircraft types are stored as a
// comma-joined string. It satisfies engine.GateSource.
type GateRepo struct {
	db *sql.DB
}

func NewGateRepo(db *sql.DB) *GateRepo {
	return &GateRepo{db: db}
}

func scanGate(row interface{ Scan(...interface{}) error }) (*models.Gate, error) {
	var g models.Gate
	var aircraftTypes, terminal, concourse, maintenance sql.NullString

	err := row.Scan(
		&g.ID, &g.GateNumber, &g.GateType, &g.MaxAircraft, &aircraftTypes,
		&terminal, &concourse, &g.CoordinatesX, &g.CoordinatesY,
		&g.IsActive, &maintenance, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	g.AircraftTypes = models.ParseAircraftTypes(aircraftTypes.String)
	g.Terminal = terminal.String
	g.Concourse = concourse.String
	g.MaintenanceStatus = maintenance.String
	return &g, nil
}

// AllGates returns every gate, active or not; availability filtering is
// the engine's concern.
func (r *GateRepo) AllGates(ctx context.Context) ([]models.Gate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+gateColumns+` FROM gates ORDER BY gate_number`)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("gates-all", err)
	}
	defer rows.Close()

	gates := []models.Gate{}
	for rows.Next() {
		g, err := scanGate(rows)
		if err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("gates-scan", err)
		}
		gates = append(gates, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("gates-rows", err)
	}
	return gates, nil
}

// GateByNumber returns the gate or engine.ErrNotFound.
func (r *GateRepo) GateByNumber(ctx context.Context, gateNumber string) (*models.Gate, error) {
	gate, err := scanGate(r.db.QueryRowContext(ctx,
		`SELECT `+gateColumns+` FROM gates WHERE gate_number = $1`, gateNumber))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("gate-by-number", err)
	}
	return gate, nil
}

// Create inserts a gate and fills in its generated ID.
func (r *GateRepo) Create(ctx context.Context, g *models.Gate) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO gates (gate_number, gate_type, max_aircraft, aircraft_types,
			terminal, concourse, coordinates_x, coordinates_y, is_active, maintenance_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		g.GateNumber, g.GateType, g.MaxAircraft, models.JoinAircraftTypes(g.AircraftTypes),
		g.Terminal, g.Concourse, g.CoordinatesX, g.CoordinatesY,
		g.IsActive, g.MaintenanceStatus,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("gate-insert", err)
	}
	return nil
}

// Count returns the number of gate rows, used to decide whether to
// seed defaults on startup.
func (r *GateRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM gates`).Scan(&n); err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("gates-count", err)
	}
	return n, nil
}
