package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/apigateway/types"

	"github.com/SebastienMelki/tablegate/internal/observability"
)

const testArn = "arn:aws:execute-api:sa-east-1:123456789012:abcdef1234/v1/GET/dynamodb"

// fakeAPIGateway is a single-page GetApiKeys stub.
type fakeAPIGateway struct {
	values []string
	err    error
	calls  int
}

func (f *fakeAPIGateway) GetApiKeys(_ context.Context, _ *apigateway.GetApiKeysInput, _ ...func(*apigateway.Options)) (*apigateway.GetApiKeysOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := &apigateway.GetApiKeysOutput{}
	for _, v := range f.values {
		out.Items = append(out.Items, types.ApiKey{Value: aws.String(v), Enabled: true})
	}
	return out, nil
}

func newTestModule(t *testing.T, client apigateway.GetApiKeysAPIClient) *Module {
	t.Helper()
	metrics, err := observability.NewNoopMetrics("test")
	if err != nil {
		t.Fatalf("NewNoopMetrics() returned unexpected error: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(client, Config{KeyPageSize: 500}, metrics, logger)
}

func tokenEvent(token, arn string) events.APIGatewayCustomAuthorizerRequest {
	return events.APIGatewayCustomAuthorizerRequest{
		Type:               "TOKEN",
		AuthorizationToken: token,
		MethodArn:          arn,
	}
}

func TestHandleTokenAuthorizer_AllowDocumentShape(t *testing.T) {
	m := newTestModule(t, &fakeAPIGateway{values: []string{"good-key"}})

	resp, err := m.HandleTokenAuthorizer(context.Background(), tokenEvent("good-key", testArn))
	if err != nil {
		t.Fatalf("HandleTokenAuthorizer() returned unexpected error: %v", err)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("json.Marshal() returned unexpected error: %v", err)
	}

	var doc struct {
		PrincipalID    string `json:"principalId"`
		PolicyDocument struct {
			Version   string `json:"Version"`
			Statement []struct {
				Action   []string `json:"Action"`
				Effect   string   `json:"Effect"`
				Resource []string `json:"Resource"`
			} `json:"Statement"`
		} `json:"policyDocument"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("json.Unmarshal() returned unexpected error: %v", err)
	}

	if doc.PrincipalID != "user" {
		t.Errorf("principalId = %q, want %q", doc.PrincipalID, "user")
	}
	if doc.PolicyDocument.Version != "2012-10-17" {
		t.Errorf("Version = %q, want %q", doc.PolicyDocument.Version, "2012-10-17")
	}
	if len(doc.PolicyDocument.Statement) != 1 {
		t.Fatalf("got %d statements, want 1", len(doc.PolicyDocument.Statement))
	}
	st := doc.PolicyDocument.Statement[0]
	if len(st.Action) != 1 || st.Action[0] != "execute-api:Invoke" {
		t.Errorf("Action = %v, want [execute-api:Invoke]", st.Action)
	}
	if st.Effect != "Allow" {
		t.Errorf("Effect = %q, want %q", st.Effect, "Allow")
	}
	if len(st.Resource) != 1 || st.Resource[0] != testArn {
		t.Errorf("Resource = %v, want [%s]", st.Resource, testArn)
	}
}

func TestHandleTokenAuthorizer_Deny(t *testing.T) {
	m := newTestModule(t, &fakeAPIGateway{values: []string{"good-key"}})

	resp, err := m.HandleTokenAuthorizer(context.Background(), tokenEvent("bad-key", testArn))
	if err != nil {
		t.Fatalf("HandleTokenAuthorizer() returned unexpected error: %v", err)
	}
	if got := resp.PolicyDocument.Statement[0].Effect; got != "Deny" {
		t.Errorf("Effect = %q, want %q", got, "Deny")
	}
	if Allows(resp, testArn) {
		t.Error("Allows() = true for a Deny document")
	}
}

func TestHandleTokenAuthorizer_MissingMethodArn(t *testing.T) {
	client := &fakeAPIGateway{values: []string{"good-key"}}
	m := newTestModule(t, client)

	_, err := m.HandleTokenAuthorizer(context.Background(), tokenEvent("good-key", ""))
	if !errors.Is(err, ErrMissingMethodArn) {
		t.Errorf("error = %v, want ErrMissingMethodArn", err)
	}
	if client.calls != 0 {
		t.Errorf("GetApiKeys() called %d times, want 0", client.calls)
	}
}

func TestHandleTokenAuthorizer_KeyServiceError(t *testing.T) {
	m := newTestModule(t, &fakeAPIGateway{err: errors.New("connection reset")})

	resp, err := m.HandleTokenAuthorizer(context.Background(), tokenEvent("good-key", testArn))
	if !errors.Is(err, ErrKeyServiceUnavailable) {
		t.Errorf("error = %v, want ErrKeyServiceUnavailable", err)
	}
	if Allows(resp, testArn) {
		t.Error("a failed invocation must not yield an allowing document")
	}
}

func TestAllows(t *testing.T) {
	allow := PolicyResponse(&Decision{PrincipalID: "user", Effect: EffectAllow, Resource: testArn})

	if !Allows(allow, testArn) {
		t.Error("Allows() = false for matching Allow document")
	}
	if Allows(allow, "arn:aws:execute-api:sa-east-1:123456789012:abcdef1234/v1/POST/dynamodb") {
		t.Error("Allows() = true for a different method ARN")
	}
	if Allows(events.APIGatewayCustomAuthorizerResponse{}, testArn) {
		t.Error("Allows() = true for an empty document")
	}
}

func TestNewWithKeySource(t *testing.T) {
	metrics, err := observability.NewNoopMetrics("test")
	if err != nil {
		t.Fatalf("NewNoopMetrics() returned unexpected error: %v", err)
	}
	m := NewWithKeySource(staticKeys{{Value: "k"}}, metrics, nil)

	d, err := m.Authorize(context.Background(), "k", testArn)
	if err != nil {
		t.Fatalf("Authorize() returned unexpected error: %v", err)
	}
	if d.Effect != EffectAllow {
		t.Errorf("Effect = %q, want %q", d.Effect, EffectAllow)
	}
}

type staticKeys []APIKey

func (s staticKeys) ListKeys(context.Context) ([]APIKey, error) {
	return s, nil
}
