// Package service contains the authorization gate's decision flow.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/SebastienMelki/tablegate/internal/auth/internal/domain"
	"github.com/SebastienMelki/tablegate/internal/observability"
)

// KeySource defines the port for fetching the current valid key list. This
// mirrors the top-level auth.KeySource interface to avoid import cycles.
type KeySource interface {
	ListKeys(ctx context.Context) ([]domain.APIKey, error)
}

// ErrKeyServiceUnavailable wraps any failure of the key-management service.
var ErrKeyServiceUnavailable = errors.New("key service unavailable")

// GateService decides whether a token may invoke a method ARN.
type GateService struct {
	keys    KeySource
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewGateService creates a new GateService with the given key source,
// metrics, and logger.
func NewGateService(keys KeySource, metrics *observability.Metrics, logger *slog.Logger) *GateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GateService{
		keys:    keys,
		metrics: metrics,
		logger:  logger.With("component", "gate-service"),
	}
}

// Authorize fetches the key list fresh and returns Allow iff token is one of
// the listed key values. An empty methodArn is rejected before any outbound
// call. A key service failure is returned as an error and never becomes an
// Allow.
func (s *GateService) Authorize(ctx context.Context, token, methodArn string) (*domain.PolicyDecision, error) {
	if methodArn == "" {
		s.recordError(ctx, "missing_method_arn")
		return nil, domain.ErrMissingMethodArn
	}

	start := time.Now()
	keys, err := s.keys.ListKeys(ctx)
	s.metrics.KeyFetchLatency.Record(ctx, float64(time.Since(start).Milliseconds()))
	if err != nil {
		s.recordError(ctx, "key_service")
		s.logger.Error("failed to fetch api keys",
			"error", err,
			"method_arn", methodArn,
		)
		return nil, fmt.Errorf("%w: %w", ErrKeyServiceUnavailable, err)
	}
	s.metrics.KeysFetched.Record(ctx, int64(len(keys)))

	effect := domain.Decide(token, domain.NewKeySet(keys))

	decision, err := domain.NewPolicyDecision(domain.PrincipalID, effect, methodArn)
	if err != nil {
		s.recordError(ctx, "policy")
		return nil, fmt.Errorf("failed to build policy: %w", err)
	}

	s.metrics.AuthDecisions.Add(ctx, 1,
		otelmetric.WithAttributes(attribute.String("effect", string(effect))),
	)

	s.logger.Info("authorization decided",
		"effect", effect,
		"token_fingerprint", domain.Fingerprint(token),
		"method_arn", methodArn,
		"keys", len(keys),
	)

	return decision, nil
}

func (s *GateService) recordError(ctx context.Context, reason string) {
	s.metrics.AuthErrors.Add(ctx, 1,
		otelmetric.WithAttributes(attribute.String("reason", reason)),
	)
}
