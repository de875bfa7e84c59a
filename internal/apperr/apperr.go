// Package apperr defines the error kinds shared by the quiz, progress,
// catalog and identity packages. Callers classify errors with errors.Is and
// errors.As; the HTTP layer maps each kind to a status code.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a referenced concept, question, planet or user does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means the caller supplied a malformed value.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict means a uniqueness rule would be violated (e.g. username taken).
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized means credentials or a session token were rejected.
	ErrUnauthorized = errors.New("unauthorized")
)

// NotFound returns an error wrapping ErrNotFound with a description of what
// was missing.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Invalid returns an error wrapping ErrInvalidInput.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}

// Conflict returns an error wrapping ErrConflict.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

// StorageError is an opaque failure from the persistence layer. The core
// does not classify it further and never retries.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a *StorageError for operation op. A nil err stays nil,
// and errors that already carry a kind from this package pass through
// unchanged so a NotFound raised by a repo is not hidden.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrInvalidInput) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorage reports whether err is (or wraps) a *StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
