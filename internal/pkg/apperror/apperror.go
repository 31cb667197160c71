package apperror

import (
	"errors"
	"net/http"
)

// AppError carries the HTTP status a failure should be reported with.
type AppError struct {
	Code    int    // HTTP status code (e.g. 400, 404)
	Message string // User-facing message
	Err     error  // Underlying error, never exposed to clients
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
// Wrapping a sentinel keeps errors.Is working while replacing the message with a detailed one.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// StatusCode returns the HTTP status for err, or 500 when err is not an AppError.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
