/*
errors.go - Centralized error types for the workflow engine

PURPOSE:
  All error kinds the engine can surface, in one place. Every rejected
  transition carries a specific kind so the host can present an
  actionable message; nothing is silently swallowed.

ERROR CATEGORIES:
  1. InvalidState - operation attempted from a state that forbids it
  2. Unauthorized - validator lacks standing, or is the request's owner
  3. Validation   - bad input (dates, portions, missing rejection comment)

USAGE:
  Hosts branch on kind with errors.Is():

    if errors.Is(err, engine.ErrUnauthorized) {
        http.Error(w, err.Error(), http.StatusForbidden)
    }

SEE ALSO:
  - lifecycle.go: The main producer of these errors
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidState is returned when an operation is attempted from a
	// status that does not permit it (e.g. Decide on a draft or a
	// terminal request).
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrUnauthorized is returned when a validator has no standing for
	// the request's current level, or tries to validate their own request.
	ErrUnauthorized = errors.New("validator not authorized")

	// ErrValidation is returned for bad input: end before start, illegal
	// half-day combination, zero working days, missing rejection comment.
	ErrValidation = errors.New("validation failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidStateError reports an operation attempted from a forbidding state.
type InvalidStateError struct {
	Op     string // "submit", "decide", "cancel"
	Status Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s request in status %q", e.Op, e.Status)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// UnauthorizedError reports a validator without standing.
type UnauthorizedError struct {
	ValidatorID string
	RequestID   string
	Status      Status
	Reason      string // "own request", "wrong role", "wrong unit"
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("validator %s may not act on request %s (%s): %s",
		e.ValidatorID, e.RequestID, e.Status, e.Reason)
}

func (e *UnauthorizedError) Unwrap() error { return ErrUnauthorized }

// ValidationError reports invalid input on a request or decision.
type ValidationError struct {
	Code    string // e.g. "end_before_start", "zero_working_days", "missing_rejection_comment"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrValidation)
}
