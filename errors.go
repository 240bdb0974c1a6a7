package chainsdk

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for generated clients.
var (
	// ErrNilRequester is returned when a client was created without a requester.
	ErrNilRequester = errors.New("chainsdk: requester is nil")

	// ErrNotFound is returned when an operation chained from a result is
	// invoked on a null result.
	ErrNotFound = errors.New("chainsdk: result not found")

	// ErrNoData is returned when a requester returns an empty response.
	ErrNoData = errors.New("chainsdk: response has no data")
)

// OperationError wraps an error returned while performing an operation.
type OperationError struct {
	Operation string // Operation name
	Err       error  // Underlying error
}

// Error returns the error string.
func (e *OperationError) Error() string {
	return fmt.Sprintf("chainsdk: operation %s: %s", e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError returns a new OperationError for the given operation.
func NewOperationError(operation string, err error) *OperationError {
	return &OperationError{Operation: operation, Err: err}
}

// IsOperationError returns true if the error is an OperationError.
func IsOperationError(err error) bool {
	if err == nil {
		return false
	}
	var e *OperationError
	return errors.As(err, &e)
}

// NotFoundError is returned when an operation is chained from a null result.
type NotFoundError struct {
	label string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("chainsdk: %s not found", e.label)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the label of the missing result.
func (e *NotFoundError) Label() string {
	return e.label
}

// NewNotFoundError returns a new NotFoundError for the given result.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}
