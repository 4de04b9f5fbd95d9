package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"genomic-storage-cost/internal/api"
	"genomic-storage-cost/internal/config"
	"genomic-storage-cost/internal/logging"
	"genomic-storage-cost/internal/metrics"
	"genomic-storage-cost/internal/pricing"
	"genomic-storage-cost/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.ServerFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid logging configuration: %v\n", err)
		os.Exit(2)
	}

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("env", cfg.Env).
		Msg("Starting genomic storage cost API")

	catalog := pricing.Default()
	if cfg.PricingFile != "" {
		catalog, err = config.LoadPricing(cfg.PricingFile)
		if err != nil {
			logger.Fatal().Err(err).Str("pricing_file", cfg.PricingFile).Msg("Failed to load pricing")
		}
		logger.Info().Str("pricing_file", cfg.PricingFile).Msg("Loaded pricing catalog")
	}

	results, err := newStore(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("store", cfg.ResultStore).Msg("Failed to initialize result store")
	}
	defer results.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Deps{
		Catalog:            catalog,
		Store:              results,
		Metrics:            metrics.New(reg),
		Gatherer:           reg,
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		StaticDir:          cfg.StaticDir,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("address", server.Addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("API stopped")
}

func newStore(cfg *config.ServerConfig, logger zerolog.Logger) (store.Store, error) {
	switch cfg.ResultStore {
	case config.StoreRedis:
		s, err := store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.ResultTTL)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.ResultTTL).Msg("Using redis result store")
		return s, nil
	default:
		logger.Info().Dur("ttl", cfg.ResultTTL).Msg("Using in-memory result store")
		return store.NewMemoryStore(cfg.ResultTTL, time.Minute), nil
	}
}
