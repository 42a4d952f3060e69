package model

import (
	"errors"
	"fmt"
)

var (
	// Credential / token errors. Callers must not be able to tell which of
	// the failure causes produced this value.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Lifecycle errors
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrLastAdmin    = errors.New("cannot remove the last admin")
)

// StorageError marks a persistence fault. It is distinct from every other
// error in the taxonomy so that "store is unavailable" is never presented as
// "no such user" or "bad credentials".
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
