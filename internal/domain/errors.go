package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrInvalidInput indicates a caller-correctable validation failure.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProviderUnavailable indicates the upstream metadata provider
	// could not serve the request.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// ValidationError describes a validation failure for a specific field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ProviderError describes a failed call to the upstream provider. The
// original cause is retained for server-side logs; callers see only the
// message.
type ProviderError struct {
	Source     string
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("failed to retrieve results from %s (status %d): %s", e.Source, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("failed to retrieve results from %s: %s", e.Source, e.Message)
}

// Unwrap returns the original cause error.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is matches ProviderError against the ErrProviderUnavailable sentinel.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderUnavailable
}

// NewProviderError creates a new ProviderError.
func NewProviderError(source string, statusCode int, message string, cause error) *ProviderError {
	return &ProviderError{
		Source:     source,
		StatusCode: statusCode,
		Message:    message,
		Cause:      cause,
	}
}
