// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Scoring service errors.
	ErrNetwork = errors.New("scoring service unreachable")
	ErrService = errors.New("scoring service error")

	// Console errors.
	ErrSubmissionPending = errors.New("a submission is already in flight")
	ErrNoTransactions    = errors.New("no transactions to score")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the operator-facing message carried by err, or fallback
// when err does not carry one.
func UserMessage(err error, fallback string) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return fallback
}

// IsTransient reports whether err came from the transport rather than from the
// scoring service itself. Transient failures are worth re-triggering as-is.
func IsTransient(err error) bool {
	return errors.Is(err, ErrNetwork)
}
