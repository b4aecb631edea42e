package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"physim-backend/internal/config"
	"physim-backend/internal/database"
	"physim-backend/internal/handlers"
	"physim-backend/internal/logging"
	"physim-backend/internal/middleware"
	"physim-backend/internal/observability"
	"physim-backend/internal/repository"
	"physim-backend/internal/router"
	"physim-backend/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	logger, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("✗ Logger initialization failed: %v", err)
	}
	defer logger.Closer()
	logger.Sugar.Info("🚀 Starting PhySim Backend...")

	// ──── Step 2: Initialize Sentry ────
	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "")
	if err != nil {
		logger.Sugar.Warnf("Sentry initialization failed: %v", err)
	}
	defer flushSentry()

	// ──── Step 3: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		logger.Sugar.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	logger.Sugar.Info("✓ PostgreSQL connected")

	// ──── Step 4: Initialize Redis ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Sugar.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	logger.Sugar.Info("✓ Redis connected")

	// ──── Step 5: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		logger.Sugar.Fatalf("✗ Database migration failed: %v", err)
	}
	logger.Sugar.Info("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	accountRepo := repository.NewAccountRepo(pool)
	simulationRepo := repository.NewSimulationRepo(pool)
	logRepo := repository.NewLogRepo(pool)
	reportRepo := repository.NewReportRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(accountRepo, redisClient, jwtAuth)
	approvalService := services.NewApprovalService(accountRepo)
	catalogService := services.NewCatalogService(simulationRepo, logRepo, accountRepo)
	progressService := services.NewProgressService(logRepo)
	reportingService := services.NewReportingService(reportRepo, accountRepo, logRepo, simulationRepo)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	studentHandler := handlers.NewStudentHandler(accountRepo, catalogService, progressService)
	teacherHandler := handlers.NewTeacherHandler(accountRepo, approvalService, catalogService, reportingService)
	adminHandler := handlers.NewAdminHandler(accountRepo, authService, approvalService, reportingService)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		accountRepo,
		authHandler,
		studentHandler,
		teacherHandler,
		adminHandler,
		logger.Base,
		cfg.FrontendURL,
		cfg.AuthRateLimit,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Sugar.Info("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	logger.Sugar.Infof("✓ PhySim Backend ready on http://localhost:%s", cfg.Port)
	logger.Sugar.Infof("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Sugar.Fatalf("Server error: %v", err)
	}
}
