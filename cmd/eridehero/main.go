package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rasmushax/eridehero/internal/api"
	"github.com/rasmushax/eridehero/internal/catalog"
	"github.com/rasmushax/eridehero/internal/compare"
	"github.com/rasmushax/eridehero/internal/config"
	"github.com/rasmushax/eridehero/internal/events"
	"github.com/rasmushax/eridehero/internal/stats"
	"github.com/rasmushax/eridehero/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Spec catalog
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Error("failed to load spec catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("spec catalog loaded", "categories", len(cat.Categories))

	registry := compare.NewRegistry(cat, compare.Options{
		MaxAdvantages: cfg.Engine.MaxAdvantages,
		Thresholds: compare.Thresholds{
			AdvantagePercentile: cfg.Engine.AdvantagePercentile,
			WeaknessPercentile:  cfg.Engine.WeaknessPercentile,
			AverageThreshold:    cfg.Engine.AverageThreshold,
			MinBracketSize:      cfg.Engine.MinBracketSize,
		},
	})

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// NATS (optional)
	var bus events.Client
	if cfg.NATS.URL != "" {
		nc, err := events.NewNATSClient(ctx, cfg.NATS.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to nats, running without events", "error", err)
		} else {
			bus = nc
			defer nc.Close()
			logger.Info("connected to nats")
		}
	}

	// Redis snapshot cache (optional)
	var cache *stats.Cache
	if cfg.Redis.URL != "" {
		c, err := stats.NewCache(cfg.Redis.URL, cfg.CacheTTL())
		if err != nil {
			logger.Warn("failed to connect to redis, running without snapshot cache", "error", err)
		} else {
			cache = c
			defer c.Close()
			logger.Info("connected to redis")
		}
	}

	// Population stats
	statsSvc := stats.New(db, cat, registry, bus, cache, logger)
	refresher := stats.NewRefresher(statsSvc, cfg.RefreshInterval())
	refresher.Start(ctx)
	defer refresher.Stop()
	refresher.SetupSubscriptions()
	logger.Info("stats refresher started", "interval", cfg.RefreshInterval())

	// API server
	router := api.NewRouter(db, registry, cat, statsSvc, bus, cfg.Server.AdminToken, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
