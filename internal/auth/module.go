package auth

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/apigateway"

	"github.com/SebastienMelki/tablegate/internal/auth/internal/domain"
	"github.com/SebastienMelki/tablegate/internal/auth/internal/repo"
	"github.com/SebastienMelki/tablegate/internal/auth/internal/service"
	"github.com/SebastienMelki/tablegate/internal/observability"
)

// Effect is the outcome of an authorization decision.
type Effect = domain.Effect

const (
	EffectAllow = domain.EffectAllow
	EffectDeny  = domain.EffectDeny
)

// Decision is the gate's verdict for one request.
type Decision = domain.PolicyDecision

// APIKey is one record of the key-management service's key list.
type APIKey = domain.APIKey

// Module is the auth module facade. It wires together the domain, service,
// and repository layers, and exposes the gate and its Lambda adapter.
type Module struct {
	service *service.GateService
	logger  *slog.Logger
}

// New creates a new auth Module backed by the API Gateway key list.
func New(client apigateway.GetApiKeysAPIClient, cfg Config, metrics *observability.Metrics, logger *slog.Logger) *Module {
	return NewWithKeySource(repo.NewAPIKeyRepository(client, cfg.KeyPageSize), metrics, logger)
}

// NewWithKeySource creates a new auth Module over an arbitrary key source.
func NewWithKeySource(keys KeySource, metrics *observability.Metrics, logger *slog.Logger) *Module {
	if logger == nil {
		logger = slog.Default()
	}

	return &Module{
		service: service.NewGateService(keys, metrics, logger),
		logger:  logger.With("component", "auth-module"),
	}
}

// Authorize decides whether token may invoke methodArn. It returns
// ErrMissingMethodArn for an empty methodArn and wraps
// ErrKeyServiceUnavailable when the key list cannot be fetched.
func (m *Module) Authorize(ctx context.Context, token, methodArn string) (*Decision, error) {
	return m.service.Authorize(ctx, token, methodArn)
}
