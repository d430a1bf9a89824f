// Package apperr defines the sentinel errors shared across service layers.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvariant marks an internal graph-construction defect, e.g. an
	// edge referencing a node absent from the node set. Never retried:
	// it indicates a logic bug, not a transient condition.
	ErrInvariant = errors.New("internal invariant violation")
)
