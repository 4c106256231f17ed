package utils

import (
	"fmt"
	"net/http"
)

// AppError is the service-layer error type. Handlers translate it into the
// response envelope; anything that is not an *AppError becomes a 500.
type AppError struct {
	Status  int
	Message string
	Details []string
}

func (e *AppError) Error() string {
	return e.Message
}

// NotFoundError signals a missing resource (404).
func NotFoundError(resource string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: resource + " not found"}
}

// DuplicateError signals a unique-key conflict (400, field-specific message).
func DuplicateError(field string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("Duplicate %s. This %s already exists.", field, field),
	}
}

// ValidationError carries per-field messages (400).
func ValidationError(details ...string) *AppError {
	msg := "Validation Error"
	if len(details) == 1 {
		msg = details[0]
	}
	return &AppError{Status: http.StatusBadRequest, Message: msg, Details: details}
}

// RateLimitError signals a quota breach (429).
func RateLimitError(message string) *AppError {
	return &AppError{Status: http.StatusTooManyRequests, Message: message}
}

// ConflictError is for business conflicts that are not raw key duplicates,
// e.g. voting twice for the same outfit.
func ConflictError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}
