// Package store persists user identities and password hashes. Identities and
// secrets live in two separate stores on purpose: leaking one must not hand
// over the other.
package store

import (
	"context"
	"errors"
	"time"

	"go-blog-admin/internal/model"
)

// UserDirectory holds identity records. Lookups are exact and case-sensitive.
type UserDirectory interface {
	FindByUsernameOrEmail(ctx context.Context, s string) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	Insert(ctx context.Context, u model.User) error
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	CountAdmins(ctx context.Context) (int, error)
}

// CredentialStore maps user id to password hash. Get reports absence through
// its second return value; an error always means the store itself failed.
type CredentialStore interface {
	Get(ctx context.Context, userID string) (string, bool, error)
	Set(ctx context.Context, userID string, passwordHash string) error
	Remove(ctx context.Context, userID string) error
}

var errDeadline = errors.New("operation deadline exceeded")

// runBounded executes a mutation with a deadline. On expiry the caller gets a
// StorageError immediately while op keeps running to completion in the
// background, so a started mutation is never left half-written.
func runBounded(timeout time.Duration, name string, op func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- op()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return &model.StorageError{Op: name, Err: errDeadline}
	}
}

// fetchBounded is runBounded for reads. Results travel over the channel so an
// abandoned op never writes into state the timed-out caller already returned.
func fetchBounded[T any](timeout time.Duration, name string, op func() (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}

	done := make(chan result, 1)
	go func() {
		value, err := op()
		done <- result{value: value, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-time.After(timeout):
		var zero T
		return zero, &model.StorageError{Op: name, Err: errDeadline}
	}
}
