package core

import (
	"fmt"
	"runtime/debug"
)

// ValidationError reports a malformed request or patch batch.
type ValidationError struct {
	Field   string
	Message string
	stack   []byte
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Stack returns the goroutine stack captured by NewValidationError, or ""
// for a literal.
func (e *ValidationError) Stack() string {
	return string(e.stack)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...), stack: debug.Stack()}
}

// UpstreamError wraps a failure of the remote completion service.
type UpstreamError struct {
	Provider string
	Err      error
	stack    []byte
}

// NewUpstreamError wraps err and records where the failure was observed.
func NewUpstreamError(provider string, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, Err: err, stack: debug.Stack()}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s completion failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Stack returns the goroutine stack captured by NewUpstreamError, or "" for a
// literal.
func (e *UpstreamError) Stack() string {
	return string(e.stack)
}
