/*
errors.go - Centralized error types for the scheduling engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Transitions fail synchronously with one of these; no partial state is
  ever persisted (see lifecycle.go and the TxRunner contract).

ERROR CATEGORIES:
  1. Precondition errors - Business rule violations (conflicts, status)
  2. Lookup errors - Referenced rows that do not exist
  3. Validation errors - Malformed input (period bounds, empty reason)

USAGE:
  Callers branch with errors.Is():

    if errors.Is(err, schedule.ErrConflict) {
        var ce *schedule.ConflictError
        errors.As(err, &ce) // ce carries the conflicting shift
    }

SEE ALSO:
  - lifecycle.go: Where these are raised
  - api/handlers.go: Maps these to HTTP status codes
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrConflict is returned when a candidate time range overlaps a
	// blocking shift. The wrapped ConflictError carries the first conflict.
	ErrConflict = errors.New("conflicting shift")

	// ErrInvalidStateTransition is returned when a transition's status
	// precondition is violated (e.g. approving a non-pending shift).
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrOutOfPeriodBounds is returned when a shift date falls outside the
	// owning schedule period's date range.
	ErrOutOfPeriodBounds = errors.New("date outside schedule period")

	// ErrPeriodNotOpen is returned when submitting against a LOCKED or
	// FINALIZED period.
	ErrPeriodNotOpen = errors.New("schedule period is not open")

	// ErrDuplicateRequest is returned when an identical pending request
	// already exists for the same PA, date, and time range.
	ErrDuplicateRequest = errors.New("identical pending request already exists")

	// ErrReasonRequired is returned when rejecting without a reason.
	ErrReasonRequired = errors.New("rejection reason is required")

	// ErrNotOwner is returned when a non-admin actor operates on a shift
	// request they did not submit.
	ErrNotOwner = errors.New("actor does not own this shift request")

	// ErrShiftNotFound is returned when a referenced shift doesn't exist.
	ErrShiftNotFound = errors.New("shift request not found")

	// ErrPeriodNotFound is returned when a referenced period doesn't exist.
	ErrPeriodNotFound = errors.New("schedule period not found")

	// ErrPANotFound is returned when a referenced PA doesn't exist.
	ErrPANotFound = errors.New("pa not found")

	// ErrInvalidPeriod is returned when a period's end precedes its start.
	ErrInvalidPeriod = errors.New("invalid period: end before start")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConflictError identifies the first blocking shift found, so callers can
// explain the rejection with a concrete example.
type ConflictError struct {
	ShiftID ShiftID
	PA      PAID
	Range   TimeRange
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting shift %s: PA %s already scheduled %s",
		e.ShiftID, e.PA, e.Range)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// StateTransitionError describes a rejected status transition.
type StateTransitionError struct {
	ShiftID ShiftID
	From    ShiftStatus
	To      ShiftStatus
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition for shift %s: %s -> %s",
		e.ShiftID, e.From, e.To)
}

func (e *StateTransitionError) Unwrap() error { return ErrInvalidStateTransition }

// BoundsError describes a date falling outside its period.
type BoundsError struct {
	PeriodID PeriodID
	Date     string
	Start    string
	End      string
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("date %s outside period %s [%s, %s]",
		e.Date, e.PeriodID, e.Start, e.End)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfPeriodBounds }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInvalidStateTransition) ||
		errors.Is(err, ErrOutOfPeriodBounds) ||
		errors.Is(err, ErrPeriodNotOpen) ||
		errors.Is(err, ErrDuplicateRequest) ||
		errors.Is(err, ErrReasonRequired) ||
		errors.Is(err, ErrNotOwner) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsNotFound returns true if the error indicates a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrShiftNotFound) ||
		errors.Is(err, ErrPeriodNotFound) ||
		errors.Is(err, ErrPANotFound)
}
