// internal/search/audit.go

// Package search maintains a best-effort Elasticsearch audit trail of
// generated recommendations and serves history queries over it. The
// Postgres rows stay authoritative; a failed index write is logged and
// otherwise ignored.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"

	apperrors "github.com/VivekSamant23/Gate-Reassignment/internal/common/errors"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/logger"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

// AuditDocument is one indexed recommendation batch entry.
type AuditDocument struct {
	BatchID            string    `json:"batch_id"`
	FlightID           int64     `json:"flight_id"`
	FlightNumber       string    `json:"flight_number,omitempty"`
	GateNumber         string    `json:"gate_number"`
	CompatibilityScore float64   `json:"compatibility_score"`
	TurnaroundScore    float64   `json:"turnaround_score"`
	DistanceScore      float64   `json:"distance_score"`
	TotalScore         float64   `json:"total_score"`
	Status             string    `json:"status"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// Auditor writes recommendation batches into the audit index and
// answers history searches.
type Auditor struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewAuditor(client *elasticsearch.Client, index string, log logger.Logger) *Auditor {
	return &Auditor{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "recommendation-audit"}),
	}
}

// IndexBatch records one generated batch. All documents of a batch
// share a batch ID. Failures are logged, never returned: auditing must
// not break recommendation generation.
func (a *Auditor) IndexBatch(ctx context.Context, recs []models.Recommendation) {
	if a == nil || len(recs) == 0 {
		return
	}

	batchID := uuid.New().String()
	now := time.Now().UTC()

	for _, rec := range recs {
		doc := AuditDocument{
			BatchID:            batchID,
			FlightID:           rec.FlightID,
			GateNumber:         rec.GateNumber,
			CompatibilityScore: rec.CompatibilityScore,
			TurnaroundScore:    rec.TurnaroundScore,
			DistanceScore:      rec.DistanceScore,
			TotalScore:         rec.TotalScore,
			Status:             rec.Status,
			GeneratedAt:        now,
		}

		body, err := json.Marshal(doc)
		if err != nil {
			continue
		}

		res, err := a.client.Index(a.index,
			bytes.NewReader(body),
			a.client.Index.WithContext(ctx),
		)
		if err != nil {
			a.logger.Warn("audit index write failed", map[string]interface{}{
				"batchId": batchID,
				"error":   err.Error(),
			})
			return
		}
		if res.IsError() {
			a.logger.Warn("audit index write rejected", map[string]interface{}{
				"batchId": batchID,
				"status":  res.Status(),
			})
			res.Body.Close()
			return
		}
		res.Body.Close()
	}

	a.logger.Debug("recommendation batch audited", map[string]interface{}{
		"batchId":   batchID,
		"documents": len(recs),
	})
}

// HistoryQuery filters a history search. Zero values mean "no filter".
type HistoryQuery struct {
	FlightID   int64
	GateNumber string
	From       time.Time
	To         time.Time
	Size       int
}

// Search returns matching audit documents, newest first.
func (a *Auditor) Search(ctx context.Context, q HistoryQuery) ([]AuditDocument, error) {
	must := []map[string]interface{}{}
	if q.FlightID != 0 {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"flight_id": q.FlightID},
		})
	}
	if q.GateNumber != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"gate_number.keyword": q.GateNumber},
		})
	}
	if !q.From.IsZero() || !q.To.IsZero() {
		rangeFilter := map[string]interface{}{}
		if !q.From.IsZero() {
			rangeFilter["gte"] = q.From.Format(time.RFC3339)
		}
		if !q.To.IsZero() {
			rangeFilter["lte"] = q.To.Format(time.RFC3339)
		}
		must = append(must, map[string]interface{}{
			"range": map[string]interface{}{"generated_at": rangeFilter},
		})
	}

	size := q.Size
	if size <= 0 {
		size = 50
	}

	query := map[string]interface{}{
		"size": size,
		"sort": []map[string]interface{}{
			{"generated_at": map[string]interface{}{"order": "desc"}},
		},
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(err)
	}

	res, err := a.client.Search(
		a.client.Search.WithContext(ctx),
		a.client.Search.WithIndex(a.index),
		a.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apperrors.NewSearchQueryFailedError(fmt.Errorf("search returned %s", res.Status()))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source AuditDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewSearchQueryFailedError(err)
	}

	docs := make([]AuditDocument, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}
