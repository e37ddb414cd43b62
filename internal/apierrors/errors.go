// Package apierrors centralizes error-to-response mapping so handlers
// never leak internal details to API clients.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"voicebot-server/internal/observability"
	"voicebot-server/internal/store"

	"github.com/gin-gonic/gin"
)

var logger = observability.NewLogger()

const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidInput   = "INVALID_INPUT"
	CodeAIServiceError = "AI_SERVICE_ERROR"
	CodeInternalError  = "INTERNAL_ERROR"
)

// APIError carries the HTTP status and sanitized message for an error.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the JSON structure returned to API clients
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondWithError maps err to an APIError, logs it with request
// correlation fields, and writes the sanitized JSON response.
func RespondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	ctx := c.Request.Context()
	apiErr := MapError(err)

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "status_code", Value: apiErr.StatusCode},
		observability.Field{Key: "error_code", Value: apiErr.Code},
		observability.Field{Key: "error_message", Value: apiErr.Message},
	)
	logger.Info(ctx, "API error response")

	c.JSON(apiErr.StatusCode, ErrorResponse{
		Error: apiErr.Message,
		Code:  apiErr.Code,
	})
}

// MapError converts domain errors to APIErrors. Unknown errors come back
// as a sanitized 500.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return &APIError{
			StatusCode: http.StatusNotFound,
			Code:       CodeNotFound,
			Message:    "Resource not found",
			Err:        err,
		}

	default:
		return mapExternalServiceError(err)
	}
}

func mapExternalServiceError(err error) *APIError {
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "openai") || strings.Contains(errMsg, "gemini") ||
		strings.Contains(errMsg, "google ai") {
		return &APIError{
			StatusCode: http.StatusServiceUnavailable,
			Code:       CodeAIServiceError,
			Message:    "AI service is temporarily unavailable. Please try again later.",
			Err:        err,
		}
	}

	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
		Err:        err,
	}
}
