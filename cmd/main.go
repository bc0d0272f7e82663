package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/ffarena/arena-backend/config"
	"github.com/ffarena/arena-backend/db"
	"github.com/ffarena/arena-backend/handlers"
	"github.com/ffarena/arena-backend/live"
	"github.com/ffarena/arena-backend/repositories"
	api "github.com/ffarena/arena-backend/routes"
	"github.com/ffarena/arena-backend/services"
	"github.com/ffarena/arena-backend/storage"
	"github.com/ffarena/arena-backend/wizard"
)

const (
	schedulerInterval = 30 * time.Second
	sessionTTL        = 30 * time.Minute
	sweepInterval     = time.Minute
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("live event hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	championRepo := repositories.NewPostgresChampionRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	tournamentService := services.NewTournamentService(tournamentRepo, uploader, logger)
	teamService := services.NewTeamService(teamRepo, hub, logger)
	championService := services.NewChampionService(championRepo, tournamentRepo, uploader, logger)
	leaderboardService := services.NewLeaderboardService(teamRepo)
	registrationService := services.NewRegistrationService(
		tournamentRepo,
		teamRepo,
		playerRepo,
		uploader,
		hub,
		logger,
	)
	logger.Info("services initialized")

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	registry := wizard.NewRegistry(sessionTTL)
	go registry.Sweep(rootCtx, sweepInterval)
	logger.Info("registration session registry started", slog.Duration("ttl", sessionTTL))

	// Registration for a tournament closes automatically once its start time
	// has passed.
	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("tournament auto-close scheduler started", slog.Duration("interval", schedulerInterval))

		if err := tournamentService.CloseStartedTournaments(rootCtx); err != nil {
			logger.Error("scheduler: initial run failed", slog.Any("error", err))
		}

		for {
			select {
			case <-rootCtx.Done():
				return
			case <-ticker.C:
				if err := tournamentService.CloseStartedTournaments(rootCtx); err != nil {
					logger.Error("scheduler: periodic run failed", slog.Any("error", err))
				}
			}
		}
	}()

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService, registry, cfg, logger)
	teamHandler := handlers.NewTeamHandler(teamService)
	championHandler := handlers.NewChampionHandler(championService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	liveHandler := handlers.NewLiveHandler(hub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		tournamentHandler,
		registrationHandler,
		teamHandler,
		championHandler,
		leaderboardHandler,
		liveHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancelRoot()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
