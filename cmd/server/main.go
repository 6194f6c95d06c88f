package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/career-assessment-service/internal/auth"
	"github.com/SAP-F-2025/career-assessment-service/internal/cache"
	"github.com/SAP-F-2025/career-assessment-service/internal/config"
	"github.com/SAP-F-2025/career-assessment-service/internal/handlers"
	"github.com/SAP-F-2025/career-assessment-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/career-assessment-service/internal/scoring"
	"github.com/SAP-F-2025/career-assessment-service/internal/services"
	"github.com/SAP-F-2025/career-assessment-service/internal/utils"
	"github.com/SAP-F-2025/career-assessment-service/internal/validator"
	"github.com/SAP-F-2025/career-assessment-service/pkg"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewDefaultLogger().Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)

	if err := run(cfg, logger); err != nil {
		slogger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	slogger := utils.ToSlogLogger(logger)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Database ---
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if err := postgres.AutoMigrate(db); err != nil {
		return err
	}
	repo := postgres.NewRepository(db)

	// --- Cache; Redis is optional ---
	cacheService := cache.NewNoopCache()
	if client, err := pkg.NewRedisClient(ctx, cfg); err != nil {
		logger.Warn("Redis unavailable, caching disabled", "error", err)
	} else {
		defer client.Close()
		cacheService = cache.NewRedisCache(client, slogger)
	}

	// --- Events ---
	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	// --- Scoring and services ---
	scoringConfig := scoring.DefaultConfig()
	engine, err := scoring.NewEngine(scoringConfig)
	if err != nil {
		return err
	}

	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:      repo,
		Cache:     cacheService,
		CacheTTL:  cfg.CacheTTL,
		Engine:    engine,
		Publisher: publisher,
		Validator: validator.New(scoringConfig),
		Tokens:    auth.NewTokenService(cfg.JWTSecret, auth.DefaultTokenTTL),
		Logger:    slogger,
		Debug:     !cfg.IsProduction(),
	})

	// --- HTTP ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.ContextLogger(logger), utils.LoggerMiddleware(logger))
	handlers.NewHandlerManager(serviceManager, logger).SetupRoutes(router)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
