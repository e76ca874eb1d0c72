// Package response builds the HTTP envelope returned by Lambda proxy
// integrations behind API Gateway.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// encodeFailureBody is returned when the caller's body cannot be encoded.
const encodeFailureBody = `{"error":"failed to encode response body"}`

// Build wraps a status code and an optional body into the proxy integration
// envelope. The body is JSON encoded, so a nil body becomes the literal null.
// Build never fails: an unencodable body yields a 500 envelope instead.
func Build(statusCode int, body any) events.APIGatewayProxyResponse {
	encoded, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       encodeFailureBody,
			Headers:    headers(),
		}
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Body:       string(encoded),
		Headers:    headers(),
	}
}

// headers returns a fresh copy of the fixed header pair so callers may
// mutate the result without affecting other responses.
func headers() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}
