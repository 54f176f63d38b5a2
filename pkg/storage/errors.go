package storage

import "errors"

// Sentinel errors for user store operations.
var (
	// ErrNotFound is returned when no user exists for the given email.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned when a user with the given email
	// already exists. The uniqueness check is atomic: two concurrent
	// registrations for the same email yield exactly one success.
	ErrDuplicateEmail = errors.New("email already registered")
)
