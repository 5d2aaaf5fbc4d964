package errors

import (
	"errors"
	"fmt"
)

// AppError represents an application error with additional context
type AppError struct {
	Code    string // Error code for client
	Message string // Human-readable message
	Err     error  // Underlying error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeMissingAPIKey       = "MISSING_API_KEY"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeMalformedResponse   = "MALFORMED_RESPONSE"
	ErrCodeUnsupportedSymbol   = "UNSUPPORTED_SYMBOL"
	ErrCodeUnexpected          = "UNEXPECTED"
)

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MissingAPIKey creates an error for operations that require a configured key
func MissingAPIKey() *AppError {
	return &AppError{
		Code:    ErrCodeMissingAPIKey,
		Message: "API key not configured",
	}
}

// UpstreamUnavailable creates an error for non-success upstream responses
func UpstreamUnavailable(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeUpstreamUnavailable,
		Message: message,
		Err:     err,
	}
}

// MalformedResponse creates an error for undeserializable upstream bodies
func MalformedResponse(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeMalformedResponse,
		Message: message,
		Err:     err,
	}
}

// UnsupportedSymbol creates an error for symbols with no external mapping
func UnsupportedSymbol(symbol string) *AppError {
	return &AppError{
		Code:    ErrCodeUnsupportedSymbol,
		Message: fmt.Sprintf("symbol %s not supported for history", symbol),
	}
}

// Unexpected wraps any error that fits no other category
func Unexpected(err error) *AppError {
	return &AppError{
		Code:    ErrCodeUnexpected,
		Message: err.Error(),
		Err:     err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// Describe renders an error as a view-facing message: the AppError message
// when available, the raw error text otherwise.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return err.Error()
}
