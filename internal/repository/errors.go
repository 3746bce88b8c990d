package repository

import (
	"errors"
	"fmt"
)

// Sentinel errors / Erreurs sentinelles
var (
	// ErrSoftDeleteUnsupported — the model has no is_deleted column, so Delete has nothing to flip.
	ErrSoftDeleteUnsupported = errors.New("entity does not support soft delete")

	// ErrNegativeOffset — list offset must be >= 0.
	ErrNegativeOffset = errors.New("offset must not be negative")
)

// NotFoundError reports a primary-key miss / Signale une clé primaire introuvable
//
// Carries the entity type name, the primary-key column and the requested
// id so the transport layer can build a precise 404 body.
type NotFoundError struct {
	Entity string
	Column string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with %s=%v not found", e.Entity, e.Column, e.ID)
}

// CreateError wraps a failed insert / Encapsule une insertion échouée
//
// The underlying persistence error is kept verbatim; no attempt is made
// to classify duplicate keys vs. foreign-key violations.
type CreateError struct {
	Entity string
	Err    error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("create %s: %v", e.Entity, e.Err)
}

func (e *CreateError) Unwrap() error { return e.Err }

// UnknownFieldError reports a field name that does not exist on the entity / Signale un champ inconnu sur l'entité
type UnknownFieldError struct {
	Entity string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q on %s", e.Field, e.Entity)
}
