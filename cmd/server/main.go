package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/huzi29/crmsystemdesign/internal/featureflags"
	"github.com/huzi29/crmsystemdesign/internal/handler"
	"github.com/huzi29/crmsystemdesign/internal/infrastructure/logger"
	rediscache "github.com/huzi29/crmsystemdesign/internal/infrastructure/redis"
	"github.com/huzi29/crmsystemdesign/internal/observability/tracing"
	"github.com/huzi29/crmsystemdesign/internal/repository"
	"github.com/huzi29/crmsystemdesign/internal/security/auth"
	"github.com/huzi29/crmsystemdesign/internal/security/middleware"
	"github.com/huzi29/crmsystemdesign/internal/service"
	"github.com/huzi29/crmsystemdesign/internal/worker"
	"github.com/huzi29/crmsystemdesign/pkg/config"
	"github.com/huzi29/crmsystemdesign/pkg/database"
)

func main() {
	// 1. Load configuration (local .env first, then environment)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting CRM server", slog.String("environment", cfg.Environment))

	// 3. Initialize tracing (no-op without an OTLP endpoint)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, log, "crmsystemdesign", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Connect to postgres
	pool, err := database.NewConnectionPool(ctx, &database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}, log)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()
	db := pool.GetDB()

	// 5. Connect to redis when configured; stats caching degrades to an
	// in-process cache otherwise
	var redisClient *rediscache.Client
	var snapshotCache service.SnapshotCache
	switch {
	case featureflags.Enabled("stats_cache_bypass"):
		log.Info("stats cache bypassed by flag")
	case cfg.RedisURL != "":
		redisClient, err = rediscache.NewClient(cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
		snapshotCache = service.NewBreakerCache(redisClient, log)
		log.Info("redis connected")
	default:
		snapshotCache = service.NewMemorySnapshotCache()
		log.Info("redis not configured, using in-process stats cache")
	}

	// 6. Initialize repositories
	userRepo := repository.NewPostgresUserRepository(db, log)
	tokenRepo := repository.NewPostgresRefreshTokenRepository(db, log)
	leadRepo := repository.NewPostgresLeadRepository(db, log)
	interactionRepo := repository.NewPostgresInteractionRepository(db, log)
	enquiryRepo := repository.NewPostgresEnquiryRepository(db, log)
	bookingRepo := repository.NewPostgresBookingRepository(db, log)
	statsRepo := repository.NewPostgresStatsRepository(db, log)

	// 7. Initialize token manager and services
	tokenManager := auth.NewTokenManager(
		cfg.JWTAccessSecret,
		cfg.JWTRefreshSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
		"crmsystemdesign",
	)

	authService := service.NewAuthService(userRepo, tokenRepo, tokenManager, cfg.PasswordPepper, log)
	leadService := service.NewLeadService(leadRepo, interactionRepo, enquiryRepo, userRepo, log)
	interactionService := service.NewInteractionService(interactionRepo, leadRepo, userRepo, log)
	enquiryService := service.NewEnquiryService(enquiryRepo, leadRepo, log)
	bookingService := service.NewBookingService(bookingRepo, leadRepo, userRepo, log)
	statsService := service.NewStatsService(statsRepo, snapshotCache, log)

	// 8. Initialize handlers and router
	router := handler.NewRouter(handler.RouterDeps{
		Auth:        handler.NewAuthHandler(authService, tokenManager, log),
		Lead:        handler.NewLeadHandler(leadService, log),
		Interaction: handler.NewInteractionHandler(interactionService, log),
		Enquiry:     handler.NewEnquiryHandler(enquiryService, log),
		Booking:     handler.NewBookingHandler(bookingService, log),
		Stats:       handler.NewStatsHandler(statsService, log),
		Health:      handler.NewHealthHandler(pool, redisClient, log),

		SessionGuard: middleware.SessionGuard(tokenManager, userRepo, log),

		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:             log,
	})

	// 9. Start the refresh token cleanup worker in the background
	cleanupWorker := worker.NewTokenCleanupWorker(tokenRepo, cfg.RefreshTokenTTL, time.Hour, log)
	go cleanupWorker.Start(ctx)

	// 10. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      otelhttp.NewHandler(router, "crmsystemdesign"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting", slog.Int("port", cfg.ServerPort))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}
