// Package gateway emulates the API Gateway runtime locally: it extracts the
// token from the Authorization header, invokes the authorizer, enforces the
// returned policy, and relays the proxy integration response.
package gateway

import (
	"time"
)

// Config holds local gateway configuration.
type Config struct {
	// Addr is the address to listen on (e.g., ":3000")
	Addr string `env:"HTTP_ADDR" envDefault:":3000"`

	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"90s"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`

	// Shutdown timeout for graceful shutdown
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Stage is the deployment stage name and first path segment
	Stage string `env:"STAGE" envDefault:"v1"`

	// RestAPIID, Region, and AccountID compose the synthesized method ARN
	RestAPIID string `env:"REST_API_ID" envDefault:"local"`
	Region    string `env:"REGION" envDefault:"us-east-1"`
	AccountID string `env:"ACCOUNT_ID" envDefault:"000000000000"`

	// AuthorizerTimeout bounds one authorizer invocation
	AuthorizerTimeout time.Duration `env:"AUTHORIZER_TIMEOUT" envDefault:"30s"`

	// IntegrationTimeout bounds one handler invocation
	IntegrationTimeout time.Duration `env:"INTEGRATION_TIMEOUT" envDefault:"60s"`

	// Rate limiting configuration
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
}

// RateLimitConfig holds stage throttling configuration.
type RateLimitConfig struct {
	// Enabled indicates whether throttling is enabled
	Enabled bool `env:"ENABLED" envDefault:"true"`

	// RequestsPerSecond is the steady-state request rate
	RequestsPerSecond float64 `env:"REQUESTS_PER_SECOND" envDefault:"10000"`

	// BurstSize is the maximum burst size
	BurstSize int `env:"BURST_SIZE" envDefault:"5000"`
}
