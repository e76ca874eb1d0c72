package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/SebastienMelki/tablegate/internal/auth"
)

// Authorizer is a TOKEN authorizer function.
type Authorizer interface {
	HandleTokenAuthorizer(ctx context.Context, event events.APIGatewayCustomAuthorizerRequest) (events.APIGatewayCustomAuthorizerResponse, error)
}

// Integration is a Lambda proxy integration function.
type Integration interface {
	HandleRequest(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

// Invocation is one inbound request routed to a protected resource.
type Invocation struct {
	RequestID    string
	Method       string
	ResourcePath string
	Path         string
	Headers      http.Header
	Query        url.Values
	SourceIP     string
}

// InvokeService runs the authorize-then-integrate pipeline for a request.
// Authorizer results are never cached: every invocation calls the authorizer.
type InvokeService struct {
	cfg         Config
	authorizer  Authorizer
	integration Integration
	logger      *slog.Logger
}

// NewInvokeService creates a new invoke service.
func NewInvokeService(cfg Config, authorizer Authorizer, integration Integration, logger *slog.Logger) *InvokeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvokeService{
		cfg:         cfg,
		authorizer:  authorizer,
		integration: integration,
		logger:      logger.With("component", "invoke-service"),
	}
}

// MethodArn synthesizes the execute-api ARN for method on resourcePath.
func (s *InvokeService) MethodArn(method, resourcePath string) string {
	return fmt.Sprintf("arn:aws:execute-api:%s:%s:%s/%s/%s%s",
		s.cfg.Region,
		s.cfg.AccountID,
		s.cfg.RestAPIID,
		s.cfg.Stage,
		method,
		resourcePath,
	)
}

// Invoke authorizes inv and, on Allow, calls the integration. The returned
// error is one of the package sentinels, wrapped with its cause.
func (s *InvokeService) Invoke(ctx context.Context, inv Invocation) (events.APIGatewayProxyResponse, error) {
	token := inv.Headers.Get("Authorization")
	if token == "" {
		return events.APIGatewayProxyResponse{}, ErrMissingToken
	}

	methodArn := s.MethodArn(inv.Method, inv.ResourcePath)

	authCtx, cancel := withTimeout(ctx, s.cfg.AuthorizerTimeout)
	policy, err := s.authorizer.HandleTokenAuthorizer(authCtx, events.APIGatewayCustomAuthorizerRequest{
		Type:               "TOKEN",
		AuthorizationToken: token,
		MethodArn:          methodArn,
	})
	cancel()
	if err != nil {
		s.logger.Error("authorizer failed",
			"request_id", inv.RequestID,
			"method_arn", methodArn,
			"error", err,
		)
		return events.APIGatewayProxyResponse{}, fmt.Errorf("%w: %w", ErrAuthorizerFailed, err)
	}

	if !auth.Allows(policy, methodArn) {
		s.logger.Info("request denied",
			"request_id", inv.RequestID,
			"method_arn", methodArn,
			"principal_id", policy.PrincipalID,
		)
		return events.APIGatewayProxyResponse{}, ErrAccessDenied
	}

	intCtx, cancel := withTimeout(ctx, s.cfg.IntegrationTimeout)
	defer cancel()

	resp, err := s.integration.HandleRequest(intCtx, s.proxyRequest(inv, policy))
	if err != nil {
		s.logger.Error("integration failed",
			"request_id", inv.RequestID,
			"error", err,
		)
		return events.APIGatewayProxyResponse{}, fmt.Errorf("%w: %w", ErrIntegrationFailed, err)
	}

	s.logger.Debug("request served",
		"request_id", inv.RequestID,
		"status", resp.StatusCode,
	)

	return resp, nil
}

// proxyRequest builds the proxy integration event for inv.
func (s *InvokeService) proxyRequest(inv Invocation, policy events.APIGatewayCustomAuthorizerResponse) events.APIGatewayProxyRequest {
	headers := make(map[string]string, len(inv.Headers))
	for k, v := range inv.Headers {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	var query map[string]string
	if len(inv.Query) > 0 {
		query = make(map[string]string, len(inv.Query))
		for k, v := range inv.Query {
			if len(v) > 0 {
				query[k] = v[0]
			}
		}
	}

	return events.APIGatewayProxyRequest{
		Resource:                        inv.ResourcePath,
		Path:                            inv.Path,
		HTTPMethod:                      inv.Method,
		Headers:                         headers,
		MultiValueHeaders:               map[string][]string(inv.Headers),
		QueryStringParameters:           query,
		MultiValueQueryStringParameters: map[string][]string(inv.Query),
		RequestContext: events.APIGatewayProxyRequestContext{
			AccountID:    s.cfg.AccountID,
			ResourcePath: inv.ResourcePath,
			Stage:        s.cfg.Stage,
			RequestID:    inv.RequestID,
			HTTPMethod:   inv.Method,
			APIID:        s.cfg.RestAPIID,
			Identity: events.APIGatewayRequestIdentity{
				SourceIP: inv.SourceIP,
			},
			Authorizer: map[string]interface{}{
				"principalId": policy.PrincipalID,
			},
		},
	}
}

// withTimeout bounds ctx by d. A non-positive d leaves ctx unbounded.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
