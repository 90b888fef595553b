package domain

import (
	"errors"
	"fmt"
)

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.
//
// The three bases form the error taxonomy callers branch on with errors.Is:
// validation failures are never retried, not-found is reported as-is, and
// storage failures are safe to retry because every write re-derives truth
// from storage rather than from client-side state.

var (
	// Taxonomy bases
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")

	// Validation errors
	ErrEmptyProposalID   = fmt.Errorf("empty proposal id: %w", ErrValidation)
	ErrEmptyUserID       = fmt.Errorf("empty user id: %w", ErrValidation)
	ErrEmptyTargetID     = fmt.Errorf("empty target id: %w", ErrValidation)
	ErrInvalidTargetType = fmt.Errorf("unknown target type: %w", ErrValidation)
	ErrRatingOutOfRange  = fmt.Errorf("rating outside 1..5: %w", ErrValidation)
	ErrTooManyTargets    = fmt.Errorf("too many target ids: %w", ErrValidation)
	ErrEmptyTitle        = fmt.Errorf("empty proposal title: %w", ErrValidation)

	// Not-found errors
	ErrProposalNotFound = fmt.Errorf("proposal %w", ErrNotFound)
	ErrFeedbackNotFound = fmt.Errorf("feedback %w", ErrNotFound)
)

// StorageErr wraps an underlying persistence failure so callers can branch
// on the taxonomy base with errors.Is(err, ErrStorage).
func StorageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %v", op, ErrStorage, err)
}
