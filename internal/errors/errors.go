package errors

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"strings"

	"codeberg.org/talentmatch/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.BadRequest(), errors.ServiceUnavailable(), errors.InternalError()
//     These functions handle both logging and HTTP response automatically
//   - Use logger.Warn() only for soft failures where processing continues
//
// For internal packages (catalogue, retriever, recommender, ...):
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Absorb recoverable conditions locally and log them once
//   - Let the handler map hard failures to a status code

// represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "bad_request", "service_unavailable")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

// standard error codes
const (
	CodeNotFound           = "not_found"
	CodeValidationError    = "validation_error"
	CodeServerError        = "server_error"
	CodeBadRequest         = "bad_request"
	CodeServiceUnavailable = "service_unavailable"
	CodeNoResults          = "no_results"
)

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for validation failures
func ValidationError(c *gin.Context, err error) {
	message := "validation failed"
	details := ""

	if err != nil {
		details = sanitizeError(err)
		if strings.Contains(err.Error(), "binding") || strings.Contains(err.Error(), "validation") {
			message = "request validation failed"
		}
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: message,
		Details: details,
	})
}

// returns a 503 when resources are not loaded yet
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "service unavailable"
	}

	logger.Warn(message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	c.JSON(http.StatusServiceUnavailable, ErrorResponse{
		Error:   CodeServiceUnavailable,
		Message: message,
	})
}

// returns a 500 when the catalogue produced nothing to recommend
func NoResults(c *gin.Context, message string, err error) {
	if message == "" {
		message = "no assessments available"
	}

	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"request_id", c.GetString("request_id"),
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeNoResults,
		Message: message,
		Details: sanitizeError(err),
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", c.GetString("request_id"),
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}

// sanitizes error messages for production
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()

	if os.Getenv("ENVIRONMENT") != "production" {
		return errMsg
	}

	if stderrors.Is(err, context.DeadlineExceeded) || strings.Contains(errMsg, "timeout") {
		return "request timed out"
	}

	if stderrors.Is(err, context.Canceled) {
		return "request canceled"
	}

	if strings.Contains(errMsg, "database") || strings.Contains(errMsg, "sql") {
		return "database operation failed"
	}

	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") {
		return "connection error occurred"
	}

	if strings.Contains(errMsg, "embedding") {
		return "embedding provider failed"
	}

	return "an error occurred"
}
