// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gate_api_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "gate_api_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "path"},
	)

	RecommendationsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gate_recommendations_generated_total",
			Help: "Total number of gate recommendations generated",
		},
	)

	RecommendationBatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gate_recommendation_batches_total",
			Help: "Total number of recommendation generation calls",
		},
		[]string{"status"},
	)

	GatesEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gate_candidates_evaluated_total",
			Help: "Total number of (flight, gate) pairs scored",
		},
	)

	FlightsSynced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gate_flights_synced_total",
			Help: "Total number of flights ingested from external sources",
		},
		[]string{"source"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gate_notifications_sent_total",
			Help: "Total number of gate assignment notifications sent",
		},
		[]string{"channel", "status"},
	)
)
