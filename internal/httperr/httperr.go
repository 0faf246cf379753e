// Package httperr centralizes the API error taxonomy and its mapping to HTTP
// statuses. Services return these errors; handlers hand them to Abort and
// never touch status codes directly.
package httperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sparkdate/spark-backend/internal/logger"
)

// Error is an API-facing error with a fixed HTTP status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Validation creates a 400 error for malformed or self-referential input.
func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// NotFound creates a 404 error for references to nonexistent records.
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// Forbidden creates a 403 error for callers acting outside their membership.
func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

// Unauthorized creates a 401 error for requests without a valid identity.
func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// Map converts repo/infra errors into API errors. Anything unrecognized
// becomes an opaque 500; the original error is for server-side logs only.
func Map(err error) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		return apiErr

	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("record not found")

	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Status: http.StatusGatewayTimeout, Message: "request timed out"}

	default:
		return &Error{Status: http.StatusInternalServerError, Message: "internal server error"}
	}
}

// Abort writes the mapped error as the JSON response and stops the handler
// chain. 5xx causes are logged with the request id; the client only sees the
// opaque message.
func Abort(c *gin.Context, err error) {
	apiErr := Map(err)
	if apiErr.Status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"request_id", c.GetString("request_id"),
			"path", c.FullPath(),
			"err", err,
		)
	}
	c.AbortWithStatusJSON(apiErr.Status, gin.H{"message": apiErr.Message})
}
