package repository

import (
	"errors"
	"fmt"
)

// Sentinel errors for the employees repository. These describe outcomes the
// handlers branch on with errors.Is; driver-level failures are wrapped in
// PersistenceError instead.
var (
	// ErrInvalidConfig indicates the repository was constructed without a
	// database handle or with a blank connection string.
	ErrInvalidConfig = errors.New("repository: missing database handle or connection string")

	// ErrNilEmployee indicates a nil record was passed to a write operation.
	ErrNilEmployee = errors.New("repository: employee must not be nil")

	// ErrNotFound indicates the requested employee does not exist.
	ErrNotFound = errors.New("repository: employee not found")
)

// PersistenceError wraps a driver or connection failure with the operation
// that produced it. The original cause stays reachable through Unwrap.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("repository: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
