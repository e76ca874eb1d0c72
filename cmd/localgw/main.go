// Command localgw serves GET /{stage}/dynamodb locally, running the
// authorizer and the table handler in-process the way API Gateway would.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/caarlos0/env/v10"

	"github.com/SebastienMelki/tablegate/internal/auth"
	"github.com/SebastienMelki/tablegate/internal/awsconfig"
	"github.com/SebastienMelki/tablegate/internal/gateway"
	"github.com/SebastienMelki/tablegate/internal/observability"
	"github.com/SebastienMelki/tablegate/internal/tables"
)

// Config holds all local gateway configuration.
type Config struct {
	// LogLevel is the log level (debug, info, warn, error)
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFormat is the log format (json, text)
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// MetricsEnabled mounts /metrics
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	// HTTP gateway configuration
	Gateway gateway.Config `envPrefix:""`

	// AWS SDK configuration
	AWS awsconfig.Config `envPrefix:""`

	// Authorization gate configuration
	Auth auth.Config `envPrefix:""`
}

func main() {
	// Load configuration from environment
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("failed to parse config", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	logger.Info("starting tablegate local gateway",
		"log_level", cfg.LogLevel,
		"http_addr", cfg.Gateway.Addr,
		"stage", cfg.Gateway.Stage,
		"aws_endpoint", cfg.AWS.Endpoint,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	obs, err := observability.New("tablegate-localgw")
	if err != nil {
		logger.Error("failed to initialize observability", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			logger.Error("observability shutdown error", "error", err)
		}
	}()

	metrics, err := observability.NewMetrics(obs.Meter())
	if err != nil {
		logger.Error("failed to create metrics", "error", err)
		os.Exit(1)
	}

	awsCfg, err := awsconfig.Load(ctx, cfg.AWS, logger)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	authorizer := auth.New(apigateway.NewFromConfig(awsCfg), cfg.Auth, metrics, logger)
	integration := tables.New(dynamodb.NewFromConfig(awsCfg), metrics, logger)

	metricsHandler := obs.MetricsHandler()
	if !cfg.MetricsEnabled {
		metricsHandler = nil
	}

	server := gateway.NewServer(cfg.Gateway, authorizer, integration, metrics, metricsHandler, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
		}
	}

	// Graceful shutdown
	logger.Info("initiating graceful shutdown")
	cancel()

	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}

// setupLogger creates a logger based on configuration.
func setupLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
