package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports bad input: an empty name, a negative nutrient
// value, or a reference to a meal that does not exist. It is always
// surfaced to the caller and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for a field.
// Parameters:
//   - field: name of the offending input field.
//   - reason: human-readable cause.
// Returns:
//   - error: the validation error.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError reports a read against an identifier that does not exist.
// Deletes are idempotent and never return this.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// NewNotFoundError creates a NotFoundError for an entity/id pair.
// Parameters:
//   - entity: entity kind ("meal", "meal item").
//   - id: missing identifier.
// Returns:
//   - error: the not-found error.
func NewNotFoundError(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// StorageFatalError reports an unrecoverable storage failure: the schema
// could not be initialized or the underlying medium cannot be used. The
// store must not serve further requests until re-initialized.
type StorageFatalError struct {
	Op  string
	Err error
}

func (e *StorageFatalError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageFatalError) Unwrap() error {
	return e.Err
}

// NewStorageFatalError wraps err as a fatal storage failure.
// Parameters:
//   - op: operation that failed ("open", "migrate", ...).
//   - err: underlying cause.
// Returns:
//   - error: the fatal storage error.
func NewStorageFatalError(op string, err error) error {
	return &StorageFatalError{Op: op, Err: err}
}

// IsStorageFatal reports whether err is (or wraps) a StorageFatalError.
func IsStorageFatal(err error) bool {
	var sfe *StorageFatalError
	return errors.As(err, &sfe)
}
