package errors

import (
	stdErrors "errors"
	"fmt"
)

// PersistenceError represents a failure to read or write durable cache storage.
// The in-memory state is still valid when one of these is returned.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cache %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError creates a new PersistenceError
func NewPersistenceError(op, path string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Path: path, Err: err}
}

// IsPersistenceError reports whether err is a PersistenceError (even when wrapped).
func IsPersistenceError(err error) bool {
	var persistErr *PersistenceError
	return stdErrors.As(err, &persistErr)
}
