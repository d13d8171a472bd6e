package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrUnauthorized  = errors.New("not authorized")
	ErrNotFound      = errors.New("not found")
	ErrConsistency   = errors.New("storage consistency failure")
	ErrRunInProgress = errors.New("recurring run already in progress")

	// ErrAlreadyGenerated means the rule already produced a transaction for the date.
	ErrAlreadyGenerated = errors.New("transaction already generated for this date")
)

// ValidationError reports a rejected input field. Nothing was written.
// Fields is set when several struct fields failed at once.
type ValidationError struct {
	Field  string
	Reason string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// AuthorizationError is returned when the actor does not own the resource.
type AuthorizationError struct {
	Resource string
	ID       int64
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s %d is not owned by the requesting user", e.Resource, e.ID)
}

func (e *AuthorizationError) Is(target error) bool { return target == ErrUnauthorized }

// NotFoundError is returned when the resource does not exist.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConsistencyError wraps a storage failure inside a unit of work. The unit was
// rolled back in full and the call may be retried.
type ConsistencyError struct {
	Op  string
	Err error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ConsistencyError) Unwrap() error { return e.Err }

func (e *ConsistencyError) Is(target error) bool { return target == ErrConsistency }

// Retryable is always true: nothing was written.
func (e *ConsistencyError) Retryable() bool { return true }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// asDomainError leaves domain errors untouched and wraps anything else as a
// ConsistencyError for op.
func asDomainError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrNotFound) || errors.Is(err, ErrConsistency) {
		return err
	}
	return &ConsistencyError{Op: op, Err: err}
}
