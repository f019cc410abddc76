package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zombar/textsense/internal/analyzer"
	"github.com/zombar/textsense/internal/api"
	"github.com/zombar/textsense/internal/config"
	"github.com/zombar/textsense/internal/metrics"
	"github.com/zombar/textsense/internal/sentiment"
	"github.com/zombar/textsense/pkg/logging"
	"github.com/zombar/textsense/pkg/tracing"
)

const version = "1.0.0"

func main() {
	var (
		configPath = flag.String("config", os.Getenv("CONFIG_PATH"), "YAML config file (env: CONFIG_PATH)")
		port       = flag.String("port", "", "Server port, overrides config (env: PORT)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err, "config_path", *configPath)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	// Setup structured logging
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	slog.SetDefault(logger)

	logger.Info("textsense service initializing", "version", version)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(context.Background(), cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() {
				if err := tp.Shutdown(context.Background()); err != nil {
					logger.Error("error shutting down tracer", "error", err)
				}
			}()
			logger.Info("tracing initialized", "endpoint", cfg.Tracing.Endpoint)
		}
	}

	collector := metrics.New("textsense", prometheus.DefaultRegisterer)

	classifier, err := sentiment.FromConfig(cfg.Sentiment, logger)
	if err != nil {
		logger.Error("failed to create sentiment classifier", "error", err, "provider", cfg.Sentiment.Provider)
		os.Exit(1)
	}

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	err = classifier.Initialize(initCtx)
	cancelInit()
	if err != nil {
		logger.Error("failed to initialize sentiment classifier", "error", err, "provider", cfg.Sentiment.Provider)
		os.Exit(1)
	}

	textAnalyzer := analyzer.New(classifier,
		analyzer.WithMaxKeywords(cfg.Keywords.MaxKeywords),
		analyzer.WithMetrics(collector),
		analyzer.WithLogger(logger),
	)

	apiHandler := api.NewHandler(textAnalyzer, api.Config{
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, collector, logger)

	// Middleware chain: tracing -> HTTP logging -> handlers, so that request
	// logs carry the trace ID
	handler := tracing.HTTPMiddleware("textsense")(
		logging.HTTPLoggingMiddleware(logger)(apiHandler),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("textsense service starting",
			"port", cfg.Server.Port,
			"sentiment_provider", cfg.Sentiment.Provider,
			"max_keywords", cfg.Keywords.MaxKeywords,
			"rate_limit_rps", cfg.Server.RateLimitRPS,
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	if err := classifier.Shutdown(ctx); err != nil {
		logger.Warn("sentiment classifier shutdown failed", "error", err)
	}

	logger.Info("server stopped")
}
