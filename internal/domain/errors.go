package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the domain. Services return these (or typed
// errors that unwrap to them) so controllers can map them to HTTP statuses.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrEmptySelection   = errors.New("no sessions with a non-zero product quantity selected")
	ErrCapacityExceeded = errors.New("session capacity exceeded")
	ErrDineInMismatch   = errors.New("dine-in quantity mismatch")
)

// CapacityExceededError reports an entry-ticket request that would exceed a
// session's seat ceiling. It unwraps to ErrCapacityExceeded.
type CapacityExceededError struct {
	SessionID   string
	SessionName string
	Available   int
	Requested   int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("session %q has %d spot(s) available, %d requested", e.SessionName, e.Available, e.Requested)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// DineInMismatchError reports a dine-in meal count that does not exactly match
// the registrant headcount for a person category. It unwraps to ErrDineInMismatch.
type DineInMismatchError struct {
	SessionID string
	Category  ProductSize
	Required  int
	Selected  int
}

func (e *DineInMismatchError) Error() string {
	return fmt.Sprintf("session %s requires exactly %d dine-in meal(s) for %s, %d selected", e.SessionID, e.Required, e.Category, e.Selected)
}

func (e *DineInMismatchError) Unwrap() error {
	return ErrDineInMismatch
}
