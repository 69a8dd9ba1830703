// internal/store/postgres/flights.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/VivekSamant23/Gate-Reassignment/internal/common/errors"
	"github.com/VivekSamant23/Gate-Reassignment/internal/engine"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

const flightColumns = `id, flight_number, scheduled_date, scheduled_time,
		aircraft_registration, aircraft_type,
		new_position, old_position, assigned_gate, planned_gate,
		aldt, aibt, eldt, eibt, aobt, atot, tobt, ttot,
		flight_type, status, created_at, updated_at`

// FlightRepo persists flights in Postgres. It satisfies
// engine.FlightSource.
type FlightRepo struct {
	db *sql.DB
}

func NewFlightRepo(db *sql.DB) *FlightRepo {
	return &FlightRepo{db: db}
}

func scanFlight(row interface{ Scan(...interface{}) error }) (*models.Flight, error) {
	var f models.Flight
	var registration, aircraftType sql.NullString
	var newPos, oldPos, assigned, planned sql.NullString

	err := row.Scan(
		&f.ID, &f.FlightNumber, &f.ScheduledDate, &f.ScheduledTime,
		&registration, &aircraftType,
		&newPos, &oldPos, &assigned, &planned,
		&f.ALDT, &f.AIBT, &f.ELDT, &f.EIBT,
		&f.AOBT, &f.ATOT, &f.TOBT, &f.TTOT,
		&f.FlightType, &f.Status, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	f.AircraftRegistration = registration.String
	f.AircraftType = aircraftType.String
	f.NewPosition = newPos.String
	f.OldPosition = oldPos.String
	f.AssignedGate = assigned.String
	f.PlannedGate = planned.String
	return &f, nil
}

// FlightByID returns the flight or engine.ErrNotFound.
func (r *FlightRepo) FlightByID(ctx context.Context, id int64) (*models.Flight, error) {
	query := fmt.Sprintf(`SELECT %s FROM flights WHERE id = $1`, flightColumns)

	flight, err := scanFlight(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("flight-by-id", err)
	}
	return flight, nil
}

// ActiveFlights returns the flights that count for gate occupancy on
// the given date: same flight type, status scheduled or delayed.
func (r *FlightRepo) ActiveFlights(ctx context.Context, scheduledDate, flightType string) ([]models.Flight, error) {
	query := fmt.Sprintf(`SELECT %s FROM flights
		WHERE scheduled_date = $1 AND flight_type = $2 AND status IN ('scheduled', 'delayed')`, flightColumns)

	rows, err := r.db.QueryContext(ctx, query, scheduledDate, flightType)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("active-flights", err)
	}
	defer rows.Close()

	return collectFlights(rows)
}

// List returns flights, optionally filtered by scheduled date, newest
// schedule first.
func (r *FlightRepo) List(ctx context.Context, scheduledDate string) ([]models.Flight, error) {
	query := fmt.Sprintf(`SELECT %s FROM flights`, flightColumns)
	args := []interface{}{}
	if scheduledDate != "" {
		query += ` WHERE scheduled_date = $1`
		args = append(args, scheduledDate)
	}
	query += ` ORDER BY scheduled_date DESC, scheduled_time ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("flights-list", err)
	}
	defer rows.Close()

	return collectFlights(rows)
}

func collectFlights(rows *sql.Rows) ([]models.Flight, error) {
	flights := []models.Flight{}
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("flights-scan", err)
		}
		flights = append(flights, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("flights-rows", err)
	}
	return flights, nil
}

// ExistsByNumberAndDate reports whether a flight with the same flight
// number is already scheduled on the date.
func (r *FlightRepo) ExistsByNumberAndDate(ctx context.Context, flightNumber, scheduledDate string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM flights WHERE flight_number = $1 AND scheduled_date = $2)`,
		flightNumber, scheduledDate).Scan(&exists)
	if err != nil {
		return false, apperrors.NewQueryExecutionFailedError("flight-exists", err)
	}
	return exists, nil
}

// Create inserts a new flight and fills in its generated ID. A flight
// with the same number on the same date is a duplicate.
func (r *FlightRepo) Create(ctx context.Context, f *models.Flight) error {
	exists, err := r.ExistsByNumberAndDate(ctx, f.FlightNumber, f.ScheduledDate)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewDuplicateFlightError(f.FlightNumber, f.ScheduledDate)
	}

	if f.Status == "" {
		f.Status = models.FlightStatusScheduled
	}

	err = r.db.QueryRowContext(ctx,
		`INSERT INTO flights (flight_number, scheduled_date, scheduled_time,
			aircraft_registration, aircraft_type, flight_type, status, assigned_gate)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		f.FlightNumber, f.ScheduledDate, f.ScheduledTime,
		f.AircraftRegistration, f.AircraftType, f.FlightType, f.Status, f.AssignedGate,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("flight-insert", err)
	}
	return nil
}

// Delete removes a flight and its stored recommendations.
func (r *FlightRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("flight-delete-begin", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM gate_recommendations WHERE flight_id = $1`, id); err != nil {
		return apperrors.NewQueryExecutionFailedError("flight-delete-recommendations", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("flight-delete", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NewFlightNotFoundError(id)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewQueryExecutionFailedError("flight-delete-commit", err)
	}
	return nil
}

// DeleteAll clears the whole schedule with its recommendations.
// Administrative operation.
func (r *FlightRepo) DeleteAll(ctx context.Context) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("flights-clear-begin", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM gate_recommendations`); err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("flights-clear-recommendations", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM flights`)
	if err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("flights-clear", err)
	}
	deleted, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("flights-clear-commit", err)
	}
	return deleted, nil
}

// AssignGate records a confirmed gate assignment on the flight row.
func (r *FlightRepo) AssignGate(ctx context.Context, flightID int64, gateNumber string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE flights SET assigned_gate = $1, updated_at = NOW() WHERE id = $2`,
		gateNumber, flightID)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("flight-assign-gate", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NewFlightNotFoundError(flightID)
	}
	return nil
}

// Upsert inserts the flight or, when a flight with the same number and
// date exists, refreshes its mutable fields. Used by external sync.
// Returns true when a new row was created.
func (r *FlightRepo) Upsert(ctx context.Context, f *models.Flight) (bool, error) {
	var inserted bool
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO flights (flight_number, scheduled_date, scheduled_time,
			aircraft_registration, aircraft_type, flight_type, status, assigned_gate)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (flight_number, scheduled_date) DO UPDATE SET
			scheduled_time = EXCLUDED.scheduled_time,
			aircraft_registration = EXCLUDED.aircraft_registration,
			aircraft_type = EXCLUDED.aircraft_type,
			status = EXCLUDED.status,
			updated_at = NOW()
		 RETURNING id, (xmax = 0)`,
		f.FlightNumber, f.ScheduledDate, f.ScheduledTime,
		f.AircraftRegistration, f.AircraftType, f.FlightType, f.Status, f.AssignedGate,
	).Scan(&f.ID, &inserted)
	if err != nil {
		return false, apperrors.NewQueryExecutionFailedError("flight-upsert", err)
	}
	return inserted, nil
}
