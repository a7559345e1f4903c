// FILE: internal/pkg/apperror/apperror.go
package apperror

import "net/http"

// AppError is the error type the error handler middleware understands.
// Anything else bubbling out of a handler is treated as a 500.
type AppError struct {
	Code       string
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return e.Message
}

func New(message string, statusCode int, code string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewDomainError marks an entity invariant violation (bad creation input or an
// illegal state transition). Reported as 422 with a machine-readable code.
func NewDomainError(message, code string) *AppError {
	return New(message, http.StatusUnprocessableEntity, code)
}

func NewConflictError(message string) *AppError {
	return New(message, http.StatusConflict, "CONFLICT")
}

func NewNotFoundError(resource string) *AppError {
	return New(resource+" not found", http.StatusNotFound, "NOT_FOUND")
}
