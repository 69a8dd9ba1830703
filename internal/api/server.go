// internal/api/server.go

// Package api exposes the recommendation service over HTTP.
package api

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VivekSamant23/Gate-Reassignment/internal/common/config"
	apperrors "github.com/VivekSamant23/Gate-Reassignment/internal/common/errors"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/logger"
	"github.com/VivekSamant23/Gate-Reassignment/internal/engine"
	"github.com/VivekSamant23/Gate-Reassignment/internal/integration"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
	"github.com/VivekSamant23/Gate-Reassignment/internal/search"
)

// FlightStore is the flight persistence surface the handlers need.
type FlightStore interface {
	FlightByID(ctx context.Context, id int64) (*models.Flight, error)
	List(ctx context.Context, scheduledDate string) ([]models.Flight, error)
	Create(ctx context.Context, f *models.Flight) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
	AssignGate(ctx context.Context, flightID int64, gateNumber string) error
}

// GateStore resolves gates for assignment validation.
type GateStore interface {
	GateByNumber(ctx context.Context, gateNumber string) (*models.Gate, error)
}

// ConfigStore is the airport_config persistence surface.
type ConfigStore interface {
	All(ctx context.Context) ([]models.AirportConfig, error)
	Get(ctx context.Context, key string) (*models.AirportConfig, error)
	Upsert(ctx context.Context, c *models.AirportConfig) error
	SaveWeights(ctx context.Context, weights engine.Weights) error
}

// RecommendationReader serves stored recommendations and records
// operator decisions.
type RecommendationReader interface {
	ForFlight(ctx context.Context, flightID int64) ([]models.Recommendation, error)
	MarkAccepted(ctx context.Context, flightID int64, gateNumber string) error
}

// Recommender generates ranked recommendations. Implemented by
// engine.Engine.
type Recommender interface {
	Generate(ctx context.Context, flightIDs []int64) ([]models.Recommendation, error)
	ActiveWeights() engine.Weights
	UpdateWeights(weights engine.Weights) error
}

// FlightSyncer pulls the schedule from the external sources.
type FlightSyncer interface {
	Sync(ctx context.Context, date string) (*integration.SyncResult, error)
}

// Uploader ingests CSV schedules.
type Uploader interface {
	Process(ctx context.Context, filename string, file io.Reader) (*integration.UploadResult, error)
}

// HistorySearcher serves the recommendation audit trail.
type HistorySearcher interface {
	Search(ctx context.Context, q search.HistoryQuery) ([]search.AuditDocument, error)
}

// AuditSink records generated batches, best effort.
type AuditSink interface {
	IndexBatch(ctx context.Context, recs []models.Recommendation)
}

// AssignmentNotifier fans out confirmed assignments.
type AssignmentNotifier interface {
	GateAssigned(ctx context.Context, flight *models.Flight, gateNumber, previousGate string)
}

// Pinger reports one dependency's health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires the HTTP surface to its collaborators. Optional
// collaborators (audit, history, notifier, syncer) may be nil; the
// matching features degrade gracefully.
type Server struct {
	cfg    *config.Config
	logger logger.Logger

	flights FlightStore
	gates   GateStore
	configs ConfigStore
	recs    RecommendationReader

	engine   Recommender
	syncer   FlightSyncer
	uploader Uploader
	history  HistorySearcher
	audit    AuditSink
	notifier AssignmentNotifier

	dependencies map[string]Pinger
}

// Options collects the optional collaborators of a Server.
type Options struct {
	Syncer       FlightSyncer
	Uploader     Uploader
	History      HistorySearcher
	Audit        AuditSink
	Notifier     AssignmentNotifier
	Dependencies map[string]Pinger
}

func NewServer(
	cfg *config.Config,
	log logger.Logger,
	flights FlightStore,
	gates GateStore,
	configs ConfigStore,
	recs RecommendationReader,
	recommender Recommender,
	opts Options,
) *Server {
	return &Server{
		cfg:          cfg,
		logger:       log.WithFields(map[string]interface{}{"component": "http-api"}),
		flights:      flights,
		gates:        gates,
		configs:      configs,
		recs:         recs,
		engine:       recommender,
		syncer:       opts.Syncer,
		uploader:     opts.Uploader,
		history:      opts.History,
		audit:        opts.Audit,
		notifier:     opts.Notifier,
		dependencies: opts.Dependencies,
	}
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	if s.cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(s.logger), Metrics())

	api := router.Group("/api")
	{
		api.GET("/health", s.handleHealth)

		api.GET("/flights", s.handleListFlights)
		api.POST("/flights", s.handleCreateFlight)
		api.DELETE("/flights", s.handleClearFlights)
		api.DELETE("/flights/:id", s.handleDeleteFlight)

		api.POST("/recommendations", s.handleGenerateRecommendations)
		api.GET("/recommendations/:flightId", s.handleFlightRecommendations)
		api.GET("/recommendations/history", s.handleRecommendationHistory)

		api.POST("/assign", s.handleAssignGates)

		api.GET("/config", s.handleListConfig)
		api.POST("/config", s.handleUpsertConfig)

		api.POST("/upload", s.handleUpload)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// respondError writes a structured error body with the mapped status.
func respondError(c *gin.Context, err error) {
	std := apperrors.Normalize(err)
	c.JSON(apperrors.HTTPStatus(std), gin.H{"error": std})
}
