// Package apperr defines the application error taxonomy and its mapping to
// HTTP status codes. Handlers and services return these; the fiber
// ErrorHandler serializes them to {"message": ...}.
package apperr

import (
	"errors"
	"fmt"
)

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func Validation(format string, args ...interface{}) *Error {
	return New(400, fmt.Sprintf(format, args...))
}

func Unauthorized(message string) *Error {
	return New(401, message)
}

func Forbidden(message string) *Error {
	return New(403, message)
}

func NotFound(message string) *Error {
	return New(404, message)
}

// Conflict covers uniqueness violations such as duplicate sku or email.
func Conflict(message string) *Error {
	return New(409, message)
}

// InsufficientStock rejects a sale exceeding on-hand quantity. The message
// reports the available quantity.
func InsufficientStock(available int) *Error {
	return New(400, fmt.Sprintf("Not enough stock. Available: %d", available))
}

// StatusOf returns the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 500
}
