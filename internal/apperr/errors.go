// Package apperr defines the two error kinds a rosterkeys run can fail with.
//
// A ValidationError means the run parameters were wrong before anything was
// touched; it always carries the complete list of problems. An
// OperationalError is everything else: file access, CSV content, remote key
// issuance, archiving.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError aggregates every parameter problem found in one pass.
type ValidationError struct {
	Problems []string
}

// Error renders the problems as an indented list.
func (e *ValidationError) Error() string {
	return "Validation failed:\n  - " + strings.Join(e.Problems, "\n  - ")
}

// OperationalError is a single-message failure, optionally chained to a cause.
type OperationalError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *OperationalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap supports error unwrapping.
func (e *OperationalError) Unwrap() error {
	return e.Err
}

// Operational creates an OperationalError without a cause.
func Operational(format string, args ...any) *OperationalError {
	return &OperationalError{Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an OperationalError chained to err.
func Wrap(err error, format string, args ...any) *OperationalError {
	return &OperationalError{Message: fmt.Sprintf(format, args...), Err: err}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsValidation extracts a ValidationError from err's chain.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
