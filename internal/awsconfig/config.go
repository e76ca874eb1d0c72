// Package awsconfig loads the shared AWS SDK configuration used to build the
// API Gateway and DynamoDB clients.
package awsconfig

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Config holds AWS SDK configuration.
type Config struct {
	// Region is the AWS region. Empty defers to the SDK default chain.
	Region string `env:"AWS_REGION"`

	// Endpoint overrides the service endpoint (e.g., "http://localhost:4566"
	// for LocalStack). Empty uses the real AWS endpoints.
	Endpoint string `env:"AWS_ENDPOINT_OVERRIDE"`

	// AccessKeyID and SecretAccessKey set static credentials. Both must be
	// set; otherwise the SDK default credential chain is used.
	AccessKeyID     string `env:"AWS_STATIC_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_STATIC_SECRET_ACCESS_KEY"`

	// MaxAttempts is the SDK attempt budget per call. 1 disables retries.
	MaxAttempts int `env:"AWS_MAX_ATTEMPTS" envDefault:"1"`
}

// Load resolves an aws.Config from cfg and the SDK default chain.
func Load(ctx context.Context, cfg Config, logger *slog.Logger) (aws.Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRetryMaxAttempts(maxAttempts),
	}
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	logger.Info("AWS config loaded",
		"region", awsCfg.Region,
		"endpoint", cfg.Endpoint,
		"max_attempts", maxAttempts,
	)

	return awsCfg, nil
}
