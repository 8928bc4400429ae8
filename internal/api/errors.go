package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/accsetupsviewer/server/internal/errors"
	"github.com/accsetupsviewer/server/internal/http/response"
	"github.com/accsetupsviewer/server/internal/metadata"
	"github.com/accsetupsviewer/server/internal/store"
)

// APIError is a custom error type that implements huma.StatusError.
// It maps domain errors to HTTP responses with consistent structure.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to use domain errors.
// Call this after creating the huma.API but before serving requests.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			if apiErr := toAPIError(err); apiErr != nil {
				return apiErr
			}
		}

		var details []*huma.ErrorDetail
		for _, err := range errs {
			var d *huma.ErrorDetail
			if errors.As(err, &d) {
				details = append(details, d)
			}
		}

		apiErr := &APIError{
			status:  status,
			Code:    response.CodeForStatus(status),
			Message: message,
		}
		if len(details) > 0 {
			apiErr.Details = details
		}
		return apiErr
	}
}

// toAPIError converts the error kinds the services return. It returns nil for anything
// else so huma's own status and message are kept.
func toAPIError(err error) *APIError {
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		return &APIError{
			status:  domainErr.HTTPStatus(),
			Code:    string(domainErr.Code),
			Message: domainErr.Message,
			Details: domainErr.Details,
		}
	}

	var metaErr *metadata.Error
	if errors.As(err, &metaErr) {
		code := domainerrors.CodeUpstream
		if metaErr.Timeout() {
			code = domainerrors.CodeUpstreamTimeout
		}
		return &APIError{
			status:  code.HTTPStatus(),
			Code:    string(code),
			Message: metaErr.Message(),
			Details: map[string]any{"kind": metaErr.Kind, "status": metaErr.StatusCode},
		}
	}

	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		return &APIError{
			status:  storeErr.HTTPCode(),
			Code:    response.CodeForStatus(storeErr.HTTPCode()),
			Message: storeErr.Message,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{
			status:  http.StatusGatewayTimeout,
			Code:    string(domainerrors.CodeUpstreamTimeout),
			Message: "request timed out",
		}
	}
	return nil
}

// EnvelopeTransformer wraps every response body in the response.Envelope shape.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	switch body := v.(type) {
	case *APIError:
		return response.Failure(body.Code, body.Message, body.Details), nil
	case response.Envelope, *response.Envelope:
		return body, nil
	default:
		return response.Success(v), nil
	}
}
