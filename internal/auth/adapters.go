package auth

import (
	"context"

	"github.com/aws/aws-lambda-go/events"

	"github.com/SebastienMelki/tablegate/internal/auth/internal/domain"
)

// HandleTokenAuthorizer is the Lambda entry point for a TOKEN authorizer.
// The token is the raw identity source value (the Authorization header),
// used without any transformation. Errors are returned to the runtime so the
// gateway answers with a server error instead of an Allow.
func (m *Module) HandleTokenAuthorizer(ctx context.Context, event events.APIGatewayCustomAuthorizerRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
	decision, err := m.Authorize(ctx, event.AuthorizationToken, event.MethodArn)
	if err != nil {
		m.logger.Error("authorizer invocation failed",
			"error", err,
			"method_arn", event.MethodArn,
		)
		return events.APIGatewayCustomAuthorizerResponse{}, err
	}

	return PolicyResponse(decision), nil
}

// PolicyResponse renders a decision as the authorizer response document:
// a single execute-api:Invoke statement on the decision's resource.
func PolicyResponse(d *Decision) events.APIGatewayCustomAuthorizerResponse {
	return events.APIGatewayCustomAuthorizerResponse{
		PrincipalID: d.PrincipalID,
		PolicyDocument: events.APIGatewayCustomAuthorizerPolicy{
			Version: domain.PolicyVersion,
			Statement: []events.IAMPolicyStatement{
				{
					Action:   []string{domain.InvokeAction},
					Effect:   string(d.Effect),
					Resource: []string{d.Resource},
				},
			},
		},
	}
}

// Allows reports whether an authorizer response grants execute-api:Invoke on
// methodArn, the way the gateway enforces it.
func Allows(resp events.APIGatewayCustomAuthorizerResponse, methodArn string) bool {
	statements := make([]domain.Statement, 0, len(resp.PolicyDocument.Statement))
	for _, st := range resp.PolicyDocument.Statement {
		statements = append(statements, domain.Statement{
			Effect:    st.Effect,
			Actions:   st.Action,
			Resources: st.Resource,
		})
	}
	return domain.Evaluate(statements, domain.InvokeAction, methodArn)
}
