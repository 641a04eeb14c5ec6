package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MinoPlay/mexicano/brackets"
	"github.com/MinoPlay/mexicano/config"
	"github.com/MinoPlay/mexicano/db"
	"github.com/MinoPlay/mexicano/handlers"
	"github.com/MinoPlay/mexicano/metrics"
	"github.com/MinoPlay/mexicano/repositories"
	api "github.com/MinoPlay/mexicano/routes"
	"github.com/MinoPlay/mexicano/services"
	"github.com/MinoPlay/mexicano/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage_backend", cfg.StorageBackend),
		slog.String("edit_window_timezone", cfg.EditWindowLocation.String()))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize tournament store", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	wsHub := brackets.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheus(registry)

	roundOpts := []services.RoundManagerOption{services.WithEditLocation(cfg.EditWindowLocation)}
	if cfg.ShuffleFirstRound {
		seed := cfg.ShuffleSeed
		if seed == 0 {
			seed = rand.Uint64()
		}
		roundOpts = append(roundOpts, services.WithShuffler(brackets.NewSeededShuffler(seed)))
		logger.Info("round 1 shuffle enabled", slog.Uint64("seed", seed))
	}
	roundManager := services.NewRoundManager(roundOpts...)

	tournamentService := services.NewTournamentService(store, roundManager, wsHub, recorder, logger)
	logger.Info("Services initialized")

	tournamentHandler := handlers.NewTournamentHandler(tournamentService, logger)
	roundHandler := handlers.NewRoundHandler(tournamentService, logger)
	standingsHandler := handlers.NewStandingsHandler(tournamentService, logger)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, tournamentService, cfg.CORSAllowedOrigins, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		logger,
		cfg.CORSAllowedOrigins,
		metrics.Handler(registry),
		tournamentHandler,
		roundHandler,
		standingsHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

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
			stop()
			closeStore()
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		stop()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}

// openStore builds the configured tournament store and returns a function
// releasing its resources.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.TournamentStore, func(), error) {
	noop := func() {}
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.EnsureSchema(ctx, dbConn); err != nil {
			dbConn.Close()
			return nil, nil, err
		}
		logger.Info("database connection established")
		closeDB := func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}
		return repositories.NewPostgresTournamentRepository(dbConn), closeDB, nil

	case config.BackendMemory:
		logger.Warn("using in-memory tournament store, data is lost on restart")
		return storage.NewMemoryTournamentStore(), noop, nil

	default:
		store, err := storage.NewR2TournamentStore(ctx, storage.R2TournamentStoreConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
			Endpoint:        cfg.R2Endpoint,
			KeyPrefix:       cfg.R2KeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("R2 tournament store initialized", slog.String("bucket", cfg.R2BucketName))
		return store, noop, nil
	}
}
