// Command tables is the Lambda proxy handler behind GET /dynamodb.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/caarlos0/env/v10"

	"github.com/SebastienMelki/tablegate/internal/awsconfig"
	"github.com/SebastienMelki/tablegate/internal/observability"
	"github.com/SebastienMelki/tablegate/internal/tables"
)

// Config holds all table handler configuration.
type Config struct {
	// LogLevel is the log level (debug, info, warn, error)
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFormat is the log format (json, text)
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// AWS SDK configuration
	AWS awsconfig.Config `envPrefix:""`
}

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("failed to parse config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	awsCfg, err := awsconfig.Load(context.Background(), cfg.AWS, logger)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	metrics, err := observability.NewNoopMetrics("tablegate-tables")
	if err != nil {
		logger.Error("failed to create metrics", "error", err)
		os.Exit(1)
	}

	module := tables.New(dynamodb.NewFromConfig(awsCfg), metrics, logger)

	logger.Info("starting table handler", "log_level", cfg.LogLevel)

	lambda.Start(module.HandleRequest)
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
