// Package httputil maps engine errors to HTTP responses.
//
// Responses carry a short machine-readable code and a fixed message. The underlying error is only
// logged, so a client cannot tell a malformed envelope from a wrong key, a tampered tag or a
// mismatched associated data.
package httputil

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/crypto-api/internal/errors"
)

// RetryAfterSeconds is advertised on 503 responses.
const RetryAfterSeconds = 5

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

var (
	invalidInputResponse = ErrorResponse{
		Error:   "invalid_input",
		Message: "The request could not be processed",
	}
	tooLargeResponse = ErrorResponse{
		Error:   "payload_too_large",
		Message: "The request payload exceeds the allowed size",
	}
	unavailableResponse = ErrorResponse{
		Error:   "service_unavailable",
		Message: "The service is temporarily unavailable",
	}
	internalErrorResponse = ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	}
)

// HandleErrorGin maps an engine error to a status code and a generic JSON body, logging the full
// error chain.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = invalidInputResponse

	case apperrors.Is(err, apperrors.ErrTooLarge):
		statusCode = http.StatusRequestEntityTooLarge
		errorResponse = tooLargeResponse

	case apperrors.Is(err, apperrors.ErrUnavailable):
		statusCode = http.StatusServiceUnavailable
		errorResponse = unavailableResponse
		c.Header("Retry-After", strconv.Itoa(RetryAfterSeconds))

	default:
		statusCode = http.StatusInternalServerError
		errorResponse = internalErrorResponse
	}

	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 response for a body that could not be decoded, or a 413 when
// decoding stopped at the body size limit.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		if logger != nil {
			logger.Warn("request body too large", slog.Int64("limit", maxBytesErr.Limit))
		}
		c.JSON(http.StatusRequestEntityTooLarge, tooLargeResponse)
		return
	}

	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: "The request body is not valid JSON",
	})
}

// HandleValidationErrorGin writes a 422 response naming the fields that failed validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
