// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyUsed indicates a unique value (such as a token name) is taken.
	ErrAlreadyUsed = errors.New("already used")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks a valid token, the token lacks
	// the required permission, or the caller does not own the resource.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDatabaseOperation indicates a persistence failure that occurred after
	// validation succeeded. It is a server-side fault, not a client error.
	ErrDatabaseOperation = errors.New("database operation failed")

	// ErrRateLimited indicates the caller exceeded the request quota for the
	// current window. Use RateLimitedError to carry the window metadata.
	ErrRateLimited = errors.New("rate limited")
)

// RateLimitedError carries the rate-limit window metadata alongside ErrRateLimited
// so the presentation layer can attach it to the response verbatim.
type RateLimitedError struct {
	Limit             int
	Remaining         int
	RetryAfterSeconds int
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	return fmt.Sprintf(
		"rate limited: retry after %d seconds (limit %d, remaining %d)",
		e.RetryAfterSeconds, e.Limit, e.Remaining,
	)
}

// Unwrap makes errors.Is(err, ErrRateLimited) hold for RateLimitedError values.
func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context while preserving the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
