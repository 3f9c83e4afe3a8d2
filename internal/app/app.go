package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mithunb9/RealRisk/internal/airquality"
	"github.com/mithunb9/RealRisk/internal/census"
	"github.com/mithunb9/RealRisk/internal/config"
	"github.com/mithunb9/RealRisk/internal/httpapi"
	"github.com/mithunb9/RealRisk/internal/observability"
	"github.com/mithunb9/RealRisk/internal/ratings"
	"github.com/mithunb9/RealRisk/internal/regulation"
	"github.com/mithunb9/RealRisk/internal/repository"
	"github.com/mithunb9/RealRisk/internal/risk"
	"github.com/mithunb9/RealRisk/internal/weather"
	"github.com/mithunb9/RealRisk/pkg/cache"
	dbbuilder "github.com/mithunb9/RealRisk/pkg/database"
)

// App wires the collaborators, cache, and aggregator behind the HTTP server.
type App struct {
	logger     *zap.Logger
	dbPool     *sql.DB
	cache      *cache.Cache
	httpServer *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
	)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))

	metrics := observability.NewMetrics()

	crimeRepo := repository.NewCrimeStatsRepository(dbPool)
	if err := crimeRepo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("crime schema init failed: %w", err)
	}
	loadCrimeDataset(ctx, crimeRepo, cfg.CrimeDataPath, logger)

	censusClient := census.NewClient(cfg.CensusAPIKey, cfg.CollaboratorTimeout, logger)
	factCache := census.NewFactCache(cacheClient, censusClient, logger,
		census.WithTTL(cfg.FactCacheTTL),
		census.WithMetrics(metrics),
	)

	var regulatoryScorer risk.RegulatoryScorer
	if cfg.OpenAIAPIKey != "" && cfg.SerperAPIKey != "" {
		search := regulation.NewSerperClient(cfg.SerperAPIKey, cfg.CollaboratorTimeout)
		regulatoryScorer = regulation.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, search, logger)
	} else {
		logger.Warn("regulatory scoring disabled, missing OPENAI_API_KEY or SERPER_API_KEY")
	}

	aggregator := risk.NewAggregator(
		factCache,
		crimeRepo,
		airquality.NewClient(cfg.CollaboratorTimeout, logger),
		regulatoryScorer,
		risk.Config{
			Competitor:  cfg.CompetitorPolicy,
			ClampScores: cfg.ClampScores,
		},
		logger,
		metrics,
	)

	handlers := httpapi.NewHandlers(
		aggregator,
		ratings.NewClient(cfg.YelpAPIKey, cfg.CollaboratorTimeout, logger),
		weather.NewClient(cfg.CollaboratorTimeout, logger),
		logger,
		cfg.RequestTimeout,
	)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger))
	handlers.Register(engine)

	return &App{
		logger: logger,
		dbPool: dbPool,
		cache:  cacheClient,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler: engine,
		},
	}, nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting", zap.String("addr", a.httpServer.Addr))

	errCh := make(chan error, 1)
	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-quit:
	}

	a.logger.Info("application shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("http shutdown error", zap.Error(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	a.logger.Info("graceful shutdown completed")
	_ = a.logger.Sync()
	return nil
}

// loadCrimeDataset imports the county crime CSV into sqlite at startup. The
// dataset is optional: without it the crime dimension reports no data.
func loadCrimeDataset(ctx context.Context, repo *repository.CrimeStatsRepository, path string, logger *zap.Logger) {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("crime dataset not loaded, crime dimension will report no data",
			zap.String("path", path), zap.Error(err))
		return
	}
	defer f.Close()

	imported, err := repo.ImportCSV(ctx, f)
	if err != nil {
		logger.Error("crime dataset import failed", zap.String("path", path), zap.Error(err))
		return
	}
	logger.Info("crime dataset loaded", zap.String("path", path), zap.Int("counties", imported))
}

// requestLogger logs each request with zap instead of gin's default writer.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(started)))
	}
}
