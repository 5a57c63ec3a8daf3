// Package apperr defines the error taxonomy shared by the entity pipeline.
// Controllers translate these into HTTP shapes; nothing below the handler
// layer speaks HTTP and nothing above it speaks GORM.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the referenced id does not exist in its collection.
var ErrNotFound = errors.New("record not found")

// FieldErrors maps field names to the messages of their failed rules.
// All failing fields are reported; only the first failing rule per field.
type FieldErrors map[string][]string

// Add appends a message for a field
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// ValidationError carries the complete per-field failure set for a payload.
// Duplicate-value and reference-not-found failures nest here as field errors.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// NewValidationError builds a ValidationError from a field error map
func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ConstraintError indicates the store rejected a write that had passed
// validation (the race window between the pre-check and the insert).
// Retryable by re-validating and resubmitting.
type ConstraintError struct {
	Err error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraint violation: %v", e.Err)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// ReferencedError indicates a delete was blocked because dependent rows
// still reference the record.
type ReferencedError struct {
	Table string
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("record is still referenced by %s", e.Table)
}

// MissingCredentialError indicates an operation required a linked secret
// that is absent. Fails fast rather than proceeding with a null secret.
type MissingCredentialError struct {
	Entity string
	ID     uint
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s %d has no linked credential", e.Entity, e.ID)
}
