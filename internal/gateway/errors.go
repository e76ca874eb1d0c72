package gateway

import "errors"

// Sentinel errors for the gateway package. Each maps to the status code API
// Gateway itself would answer with.
var (
	ErrMissingToken      = errors.New("missing authorization token")   // 401
	ErrAccessDenied      = errors.New("access denied by policy")       // 403
	ErrAuthorizerFailed  = errors.New("authorizer invocation failed")  // 500
	ErrIntegrationFailed = errors.New("integration invocation failed") // 502
)

// Gateway-level response messages, matching what API Gateway returns.
const (
	msgUnauthorized    = "Unauthorized"
	msgExplicitDeny    = "User is not authorized to access this resource with an explicit deny"
	msgInternalError   = "Internal server error"
	msgTooManyRequests = "Too Many Requests"
	msgMissingAuthTok  = "Missing Authentication Token"
)
