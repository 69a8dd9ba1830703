// internal/store/postgres/recommendations.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	apperrors "github.com/VivekSamant23/Gate-Reassignment/internal/common/errors"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

// RecommendationRepo persists scored gate recommendations. It satisfies
// engine.RecommendationStore.
type RecommendationRepo struct {
	db *sql.DB
}

func NewRecommendationRepo(db *sql.DB) *RecommendationRepo {
	return &RecommendationRepo{db: db}
}

// ReplaceForFlights atomically swaps the stored recommendations of the
// given flights for the new batch. Delete and insert share one
// transaction; on any failure the prior rows survive untouched.
func (r *RecommendationRepo) ReplaceForFlights(ctx context.Context, flightIDs []int64, recs []models.Recommendation) error {
	if len(flightIDs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("recommendations-begin", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM gate_recommendations WHERE flight_id = ANY($1)`,
		pq.Array(flightIDs)); err != nil {
		return apperrors.NewQueryExecutionFailedError("recommendations-delete", err)
	}

	for _, rec := range recs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO gate_recommendations (flight_id, gate_id, gate_number,
				compatibility_score, turnaround_score, distance_score, total_score, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			rec.FlightID, rec.GateID, rec.GateNumber,
			rec.CompatibilityScore, rec.TurnaroundScore, rec.DistanceScore,
			rec.TotalScore, rec.Status); err != nil {
			return apperrors.NewQueryExecutionFailedError("recommendations-insert", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewQueryExecutionFailedError("recommendations-commit", err)
	}
	return nil
}

// ForFlight returns the stored recommendations of one flight, best
// score first.
func (r *RecommendationRepo) ForFlight(ctx context.Context, flightID int64) ([]models.Recommendation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, flight_id, gate_id, gate_number,
			compatibility_score, turnaround_score, distance_score, total_score,
			status, created_at
		 FROM gate_recommendations WHERE flight_id = $1 ORDER BY total_score DESC`,
		flightID)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("recommendations-for-flight", err)
	}
	defer rows.Close()

	recs := []models.Recommendation{}
	for rows.Next() {
		var rec models.Recommendation
		if err := rows.Scan(
			&rec.ID, &rec.FlightID, &rec.GateID, &rec.GateNumber,
			&rec.CompatibilityScore, &rec.TurnaroundScore, &rec.DistanceScore,
			&rec.TotalScore, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("recommendations-scan", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("recommendations-rows", err)
	}
	return recs, nil
}

// MarkAccepted records the operator's choice: the matching
// recommendation becomes accepted, every other recommendation of the
// flight becomes rejected.
func (r *RecommendationRepo) MarkAccepted(ctx context.Context, flightID int64, gateNumber string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("recommendations-accept-begin", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE gate_recommendations SET status = $1 WHERE flight_id = $2 AND gate_number <> $3`,
		models.RecommendationRejected, flightID, gateNumber); err != nil {
		return apperrors.NewQueryExecutionFailedError("recommendations-reject-others", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE gate_recommendations SET status = $1 WHERE flight_id = $2 AND gate_number = $3`,
		models.RecommendationAccepted, flightID, gateNumber); err != nil {
		return apperrors.NewQueryExecutionFailedError("recommendations-accept", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewQueryExecutionFailedError("recommendations-accept-commit", err)
	}
	return nil
}
