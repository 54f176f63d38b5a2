package storage

import "context"

// User is a stored user record. PasswordHash is the credential verifier
// produced by the password hasher; it is opaque to the store, never
// serialized into responses, and never compared by equality to user input.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Quote        string `json:"quote,omitempty"`
}

// UserStore persists and retrieves user records keyed by email.
// All methods honor context cancellation where the backend supports it.
type UserStore interface {
	// CreateUser inserts a new user with the given email and credential
	// verifier, assigning a fresh ID. Returns ErrDuplicateEmail if the
	// email is already registered; the check is atomic under concurrency.
	CreateUser(ctx context.Context, email, passwordHash string) (*User, error)

	// GetUserByEmail returns the user for the given email, or ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// UpdateQuote sets the quote for the user with the given email.
	// Returns ErrNotFound if no such user exists.
	UpdateQuote(ctx context.Context, email, quote string) error

	// HealthCheck verifies the backing store is reachable.
	HealthCheck(ctx context.Context) error

	// Close releases held resources.
	Close() error
}
