package errors

import (
	stderrors "errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// AppError carries the HTTP status that ErrorHandlerMiddleware should render.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

var (
	ErrInvalidRequest = NewAppError(http.StatusBadRequest, "Invalid request parameters")
	ErrUnauthorized   = NewAppError(http.StatusUnauthorized, "Unauthorized access")
	ErrForbidden      = NewAppError(http.StatusForbidden, "Access denied")
	ErrNotFound       = NewAppError(http.StatusNotFound, "Resource not found")
	ErrInternalServer = NewAppError(http.StatusInternalServerError, "Internal server error")
	ErrRateLimit      = NewAppError(http.StatusTooManyRequests, "Rate limit exceeded")
)

func BadRequest(msg string) *AppError { return NewAppError(http.StatusBadRequest, msg) }

func NotFound(msg string) *AppError { return NewAppError(http.StatusNotFound, msg) }

func Unauthorized(msg string) *AppError { return NewAppError(http.StatusUnauthorized, msg) }

func Forbidden(msg string) *AppError { return NewAppError(http.StatusForbidden, msg) }

func Conflict(msg string) *AppError { return NewAppError(http.StatusConflict, msg) }

func Internal(msg string) *AppError { return NewAppError(http.StatusInternalServerError, msg) }

// IsUniqueViolation reports whether err came from a unique index or constraint,
// for both Postgres and SQLite error texts.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// FromDB maps a persistence error to an AppError. Not-found becomes 404 with
// notFoundMsg, unique violations become 409 with conflictMsg, everything else 500.
func FromDB(err error, notFoundMsg, conflictMsg string) *AppError {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(notFoundMsg)
	case IsUniqueViolation(err):
		return Conflict(conflictMsg)
	default:
		return ErrInternalServer
	}
}
