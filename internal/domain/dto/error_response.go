package dto

import (
	"time"

	"github.com/guttosm/tradedesk/internal/schema"
)

// ErrorResponse is the body of every non-2xx answer.
//
// Fields:
//   - Message: short, client-safe description.
//   - ErrorDetails: optional underlying cause.
//   - Errors: field-level validation failures (422 only).
//   - Items: per-element outcome of a rejected batch (422 only).
//   - Timestamp: when the error was produced.
type ErrorResponse struct {
	Message      string              `json:"message" example:"validation failed"`
	ErrorDetails string              `json:"error_details,omitempty"`
	Errors       []schema.FieldError `json:"errors,omitempty"`
	Items        []ItemReport        `json:"items,omitempty"`
	Timestamp    time.Time           `json:"timestamp"`
}

// Error implements error so an ErrorResponse can travel through gin's error list.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse stamps a response with the current time. err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// NewValidationResponse carries field errors without echoing them as details.
func NewValidationResponse(message string, errs schema.FieldErrors) ErrorResponse {
	resp := NewErrorResponse(message, nil)
	resp.Errors = errs
	return resp
}
