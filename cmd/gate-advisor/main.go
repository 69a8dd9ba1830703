// cmd/gate-advisor/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/VivekSamant23/Gate-Reassignment/internal/api"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/aws"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/config"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/database"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/logger"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/observability"
	"github.com/VivekSamant23/Gate-Reassignment/internal/engine"
	"github.com/VivekSamant23/Gate-Reassignment/internal/integration"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
	"github.com/VivekSamant23/Gate-Reassignment/internal/notify"
	"github.com/VivekSamant23/Gate-Reassignment/internal/search"
	"github.com/VivekSamant23/Gate-Reassignment/internal/store/cache"
	"github.com/VivekSamant23/Gate-Reassignment/internal/store/postgres"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// esPinger adapts the Elasticsearch client's context-aware Info call to
// the health check's Pinger shape.
type esPinger struct {
	es *database.ElasticsearchClient
}

func (p esPinger) Ping(ctx context.Context) error {
	return p.es.Info(ctx)
}

// observedRecommender records generation outcomes and latency on the
// OpenTelemetry meter around the engine.
type observedRecommender struct {
	*engine.Engine
	obs *observability.Observability
}

func (r observedRecommender) Generate(ctx context.Context, flightIDs []int64) ([]models.Recommendation, error) {
	start := time.Now()
	recs, err := r.Engine.Generate(ctx, flightIDs)

	status := "success"
	if err != nil {
		status = "error"
	}
	r.obs.RecordGeneration(ctx, status)
	r.obs.RecordGenerationDuration(ctx, time.Since(start), status)
	return recs, err
}

// configStore writes weight updates through to the Redis cache so other
// replicas pick up new weights without waiting out the TTL.
type configStore struct {
	*postgres.ConfigRepo
	cache *cache.WeightsCache
}

func (s configStore) SaveWeights(ctx context.Context, weights engine.Weights) error {
	if err := s.ConfigRepo.SaveWeights(ctx, weights); err != nil {
		return err
	}
	s.cache.Store(ctx, weights)
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting gate advisor...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch with retry (optional) ---
	var esClient *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Repositories & caches ---
	flightRepo := postgres.NewFlightRepo(pg.DB)
	gateRepo := postgres.NewGateRepo(pg.DB)
	recRepo := postgres.NewRecommendationRepo(pg.DB)
	configRepo := postgres.NewConfigRepo(pg.DB)

	gateSource := cache.NewGateCache(gateRepo, redis.Client,
		config.GetDuration(cfg.Engine.GateCacheTTL), log)
	weightsLoader := cache.NewWeightsCache(configRepo, redis.Client,
		config.GetDuration(cfg.Engine.WeightCacheTTL), log)

	if err := seedDefaults(ctx, gateRepo, configRepo, cfg, log); err != nil {
		zapLog.Fatal("seeding defaults failed", zap.Error(err))
	}

	// --- Recommendation engine ---
	initialWeights := engine.Weights(cfg.Engine.DefaultWeights)
	if stored, err := weightsLoader.LoadWeights(ctx); err != nil {
		log.Warn("stored weights unavailable, using configured defaults", map[string]interface{}{
			"error": err.Error(),
		})
	} else if stored != nil {
		initialWeights = stored
	}
	recommender := engine.New(flightRepo, gateSource, recRepo, initialWeights, log)

	// --- External integrations ---
	aodb := integration.NewAODBClient(cfg.Integrations.AODB, log)
	gms := integration.NewGMSClient(cfg.Integrations.GMS, log)
	syncer := integration.NewSyncer(flightRepo, log, aodb, gms)
	uploader := integration.NewUploader(flightRepo, log)

	// --- Audit trail (optional) ---
	var auditor *search.Auditor
	if esClient != nil {
		auditor = search.NewAuditor(esClient.Client, cfg.Database.Elasticsearch.AuditIndex, log)
	}

	// --- Notifications (optional) ---
	var notifier *notify.Notifier
	if cfg.Notifications.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWSRegion)
		if err != nil {
			zapLog.Fatal("SNS client failed", zap.Error(err))
		}
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWSRegion)
		if err != nil {
			zapLog.Fatal("SES client failed", zap.Error(err))
		}
		notifier = notify.NewNotifier(snsClient, sesClient, cfg.Notifications, log)
		zapLog.Info("Assignment notifications enabled")
	}

	// --- HTTP server ---
	opts := api.Options{
		Syncer:   syncer,
		Uploader: uploader,
		Dependencies: map[string]api.Pinger{
			"postgres": pg,
			"redis":    redis,
		},
	}
	if auditor != nil {
		opts.History = auditor
		opts.Audit = auditor
		opts.Dependencies["elasticsearch"] = esPinger{es: esClient}
	}
	if notifier != nil {
		opts.Notifier = notifier
	}

	configs := configStore{ConfigRepo: configRepo, cache: weightsLoader}
	server := api.NewServer(cfg, log, flightRepo, gateRepo, configs, recRepo,
		observedRecommender{Engine: recommender, obs: obs}, opts)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Router(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Gate advisor stopped gracefully")
}
