package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Sentinels the typed errors below wrap, for errors.Is checks
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrRestricted = errors.New("delete restricted by dependent rows")
	ErrDuplicate  = errors.New("duplicate")
)

// ValidationError reports a malformed or out-of-range attribute, or a dangling
// reference on create/update. Always recoverable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NewDanglingReference creates the ValidationError used when a foreign key
// does not resolve to an existing row.
func NewDanglingReference(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "dangling reference"}
}

// NotFoundError reports an operation targeting a nonexistent id.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound creates a NotFoundError for an entity id.
func NewNotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// RestrictedError reports a delete blocked by an existing dependent under a
// RESTRICT policy. The blocking row is identified so the caller can resolve it.
type RestrictedError struct {
	BlockingEntity string
	BlockingID     int64
}

func (e *RestrictedError) Error() string {
	return fmt.Sprintf("delete restricted: blocked by %s %d", e.BlockingEntity, e.BlockingID)
}

func (e *RestrictedError) Unwrap() error { return ErrRestricted }

// DuplicateEmailError reports an email uniqueness violation on account
// registration or update.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("email %q is already registered", e.Email)
}

func (e *DuplicateEmailError) Unwrap() error { return ErrDuplicate }

// DuplicateLinkError reports a composite-key uniqueness violation on an
// association row.
type DuplicateLinkError struct {
	Kind    string
	LeftID  int64
	RightID int64
}

func (e *DuplicateLinkError) Error() string {
	return fmt.Sprintf("%s link (%d, %d) already exists", e.Kind, e.LeftID, e.RightID)
}

func (e *DuplicateLinkError) Unwrap() error { return ErrDuplicate }

// IsRecoverable reports whether the error belongs to the domain taxonomy.
// Anything else is an infrastructure fault the caller should retry.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrRestricted) ||
		errors.Is(err, ErrDuplicate)
}
