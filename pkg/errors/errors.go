package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrorType represents the type of error
type ErrorType string

// Every failure crossing the core boundary is normalized to one of these
// kinds before it reaches a client.
const (
	// Caller-correctable errors
	ErrorTypeUnauthenticated ErrorType = "UNAUTHENTICATED"
	ErrorTypeInvalidArgument ErrorType = "INVALID_ARGUMENT"

	// Infrastructure failures
	ErrorTypeStoreUnavailable ErrorType = "STORE_UNAVAILABLE"
	ErrorTypeEmbeddingFailure ErrorType = "EMBEDDING_FAILURE"
	ErrorTypeIndexUnavailable ErrorType = "INDEX_UNAVAILABLE"

	// Anything genuinely unexpected
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// captureStackTrace captures the current stack trace
func captureStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := ""
	for {
		frame, more := frames.Next()
		stack += fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function)
		if !more {
			break
		}
	}
	return stack
}

// Constructor functions for the error taxonomy

// NewUnauthenticatedError creates an authentication error. The message is
// what the client sees; the cause (the raw decode error) stays internal.
func NewUnauthenticatedError(message string) *AppError {
	if message == "" {
		message = "unauthenticated"
	}
	return &AppError{
		Type:       ErrorTypeUnauthenticated,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
		StackTrace: captureStackTrace(),
	}
}

// NewInvalidArgumentError creates a validation error for out-of-contract input
func NewInvalidArgumentError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidArgument,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		StackTrace: captureStackTrace(),
	}
}

// NewStoreUnavailableError creates an event store failure
func NewStoreUnavailableError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeStoreUnavailable,
		Message:    fmt.Sprintf("event store operation '%s' failed", operation),
		Cause:      err,
		HTTPStatus: http.StatusServiceUnavailable,
		StackTrace: captureStackTrace(),
	}
}

// NewEmbeddingFailureError creates an embedding service failure
func NewEmbeddingFailureError(message string, err error) *AppError {
	if message == "" {
		message = "embedding service failed"
	}
	return &AppError{
		Type:       ErrorTypeEmbeddingFailure,
		Message:    message,
		Cause:      err,
		HTTPStatus: http.StatusBadGateway,
		StackTrace: captureStackTrace(),
	}
}

// NewIndexUnavailableError creates a vector index failure
func NewIndexUnavailableError(message string, err error) *AppError {
	if message == "" {
		message = "vector index query failed"
	}
	return &AppError{
		Type:       ErrorTypeIndexUnavailable,
		Message:    message,
		Cause:      err,
		HTTPStatus: http.StatusBadGateway,
		StackTrace: captureStackTrace(),
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// Helper functions

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsUnauthenticated checks if an error is an authentication failure
func IsUnauthenticated(err error) bool {
	return IsType(err, ErrorTypeUnauthenticated)
}

// IsInvalidArgument checks if an error is a validation failure
func IsInvalidArgument(err error) bool {
	return IsType(err, ErrorTypeInvalidArgument)
}

// IsStoreUnavailable checks if an error is an event store failure
func IsStoreUnavailable(err error) bool {
	return IsType(err, ErrorTypeStoreUnavailable)
}

// IsEmbeddingFailure checks if an error is an embedding service failure
func IsEmbeddingFailure(err error) bool {
	return IsType(err, ErrorTypeEmbeddingFailure)
}

// IsIndexUnavailable checks if an error is a vector index failure
func IsIndexUnavailable(err error) bool {
	return IsType(err, ErrorTypeIndexUnavailable)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, add context to message
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}

	// Otherwise create a new internal error
	return NewInternalError(message).WithCause(err)
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}
