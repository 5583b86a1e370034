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

	"github.com/MikeSquared-Agency/churnwatch/internal/api"
	"github.com/MikeSquared-Agency/churnwatch/internal/config"
	"github.com/MikeSquared-Agency/churnwatch/internal/hermes"
	"github.com/MikeSquared-Agency/churnwatch/internal/metrics"
	"github.com/MikeSquared-Agency/churnwatch/internal/model"
	"github.com/MikeSquared-Agency/churnwatch/internal/scoring"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	envFile := flag.String("env-file", ".env", "optional dotenv file applied before env overrides")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if loaded, err := config.LoadDotEnv(*envFile); err != nil {
		logger.Error("failed to load env file", "error", err)
		os.Exit(1)
	} else if loaded {
		logger.Info("loaded env file", "path", *envFile)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = cfg.Logging.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Classifier
	clf, err := model.Load(cfg.Model.Path)
	if err != nil {
		logger.Error("model unavailable", "path", cfg.Model.Path, "error", err)
		os.Exit(1)
	}
	predictor, err := scoring.NewPredictor(clf, scoring.Thresholds{
		Medium: cfg.Risk.MediumThreshold,
		High:   cfg.Risk.HighThreshold,
	}, logger)
	if err != nil {
		logger.Error("classifier rejected", "path", cfg.Model.Path, "error", err)
		os.Exit(1)
	}
	metrics.ModelInfo.WithLabelValues(clf.Version()).Set(float64(clf.NumFeatures()))
	logger.Info("classifier loaded",
		"path", cfg.Model.Path,
		"version", clf.Version(),
		"features", clf.NumFeatures(),
	)

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// API server
	router := api.NewRouter(predictor, hermesClient, cfg.Server.AdminToken, cfg.Server.RateLimitPerMinute, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(),
		ReadHeaderTimeout: 10 * time.Second,
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
