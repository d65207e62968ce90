package workflow

import (
	"context"
	"database/sql"

	"civicBack/internal/models"
)

// Status constants used by the complaint state machine. "In Progress" covers
// both the government path (officer assigned) and the private path (payment
// confirmed); the resolution path distinguishes the two.
const (
	StatusPending         = "Pending"
	StatusRouted          = "Routed"
	StatusAwaitingQuotes  = "Awaiting Quotes"
	StatusAwaitingPayment = "Awaiting Payment"
	StatusInProgress      = "In Progress"
	StatusResolved        = "Resolved"
)

// Resolution path values. Empty means the admin has not routed the complaint.
const (
	PathUnset      = ""
	PathGovernment = "government"
	PathPrivate    = "private"
)

var transitions = map[string]map[string]struct{}{
	StatusPending: {
		StatusRouted:         {},
		StatusInProgress:     {},
		StatusAwaitingQuotes: {},
	},
	StatusRouted: {
		StatusInProgress: {},
		StatusResolved:   {},
	},
	StatusAwaitingQuotes: {
		StatusAwaitingPayment: {},
	},
	StatusAwaitingPayment: {
		StatusInProgress: {},
	},
	StatusInProgress: {
		StatusResolved: {},
	},
	StatusResolved: {},
}

// CanTransition reports whether a complaint may move from one status to
// another. Self transitions are not allowed: routing a routed complaint or
// resolving a resolved one must fail.
func CanTransition(from, to string) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// ValidCombination reports whether a status may coexist with a resolution
// path. The status value alone does not identify the path, so every guard
// checks the pair rather than the status string.
func ValidCombination(status, path string) bool {
	switch status {
	case StatusPending:
		return path == PathUnset
	case StatusRouted:
		return path == PathGovernment
	case StatusAwaitingQuotes, StatusAwaitingPayment:
		return path == PathPrivate
	case StatusInProgress, StatusResolved:
		return path == PathGovernment || path == PathPrivate
	default:
		return false
	}
}

// Apply moves a complaint's status using an optimistic compare-and-swap so
// the guard check and the write are one atomic step. Zero rows affected means
// the complaint no longer holds fromStatus (or does not exist); the caller
// decides which, typically by probing for the row inside the same
// transaction.
func Apply(ctx context.Context, tx *sql.Tx, complaintID int, fromStatus, toStatus string) error {
	if !CanTransition(fromStatus, toStatus) {
		return models.ErrInvalidTransition
	}
	res, err := tx.ExecContext(ctx, `UPDATE complaints SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?`, toStatus, complaintID, fromStatus)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
