// Package errors provides the generic error categories shared by the engine and its callers.
// Domain packages wrap these sentinels so the request layer can map any failure to a transport
// response with errors.Is, without knowing the domain error that produced it.
package errors

import (
	"errors"
	"fmt"
)

// Standard error categories.
var (
	// ErrInvalidInput indicates the input cannot be processed: malformed, unauthenticated or out of range.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTooLarge indicates the input exceeds a configured size limit.
	ErrTooLarge = errors.New("too large")

	// ErrUnavailable indicates the operation cannot be served right now. Depending on the wrapping
	// domain error this is either retryable (timeouts) or permanent for the process (entropy loss).
	ErrUnavailable = errors.New("unavailable")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message while preserving the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
