package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/carelink/care-coordination/internal/api"
	"github.com/carelink/care-coordination/internal/config"
	"github.com/carelink/care-coordination/internal/coordination"
	"github.com/carelink/care-coordination/internal/metrics"
	"github.com/carelink/care-coordination/internal/seed"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		errLogger := zerolog.New(os.Stderr)
		errLogger.Fatal().Err(err).Msg("config load error")
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.PrettyLog {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	logger.Info().
		Str("env", cfg.Env).
		Str("http_port", cfg.HTTPPort).
		Str("version", version).
		Msg("api-server starting up")

	dataset := seed.Demo()
	if cfg.SeedFile != "" {
		dataset, err = seed.LoadFile(cfg.SeedFile)
		if err != nil {
			logger.Fatal().Err(err).Str("seed_file", cfg.SeedFile).Msg("seed file error")
		}
		logger.Info().Str("seed_file", cfg.SeedFile).Msg("loaded seed dataset")
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := coordination.NewStore(seed.NewSeeder(dataset))
	transitions := metrics.NewTransitions(nil)
	httpMetrics := metrics.NewHTTP(nil)
	svc := coordination.NewService(store, logger, transitions)

	go store.RunSweeper(rootCtx, logger, cfg.SessionTTL, cfg.SweepInterval)

	router := api.NewRouter(api.RouterConfig{
		Service:     svc,
		Logger:      logger,
		HTTPMetrics: httpMetrics,
		Env:         cfg.Env,
		Version:     version,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-rootCtx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("api-server stopped")
}
