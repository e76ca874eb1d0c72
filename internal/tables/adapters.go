package tables

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/smithy-go"

	"github.com/SebastienMelki/tablegate/internal/response"
)

const (
	messageSucceeded = "Succeeded"
	messageFailed    = "Failed"

	// errorCodeInternal is reported when a failure carries no API error code.
	errorCodeInternal = "InternalError"
	errorCodeTimeout  = "Timeout"
)

type successBody struct {
	Message string     `json:"message"`
	Tables  *TableList `json:"tables"`
}

type failureBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// HandleRequest is the Lambda proxy integration entry point. The request is
// not inspected. Store failures become a 500 envelope, never a runtime error.
func (m *Module) HandleRequest(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	list, err := m.ListTables(ctx)
	if err != nil {
		code := errorCode(err)
		m.logger.Error("list tables request failed",
			"error", err,
			"error_code", code,
			"request_id", req.RequestContext.RequestID,
		)
		return response.Build(http.StatusInternalServerError, failureBody{
			Message: messageFailed,
			Error:   code,
		}), nil
	}

	return response.Build(http.StatusOK, successBody{
		Message: messageSucceeded,
		Tables:  list,
	}), nil
}

// errorCode extracts the AWS API error code from err.
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() != "" {
		return apiErr.ErrorCode()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errorCodeTimeout
	}
	return errorCodeInternal
}
