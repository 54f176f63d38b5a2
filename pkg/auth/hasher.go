package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher one-way transforms plaintext secrets into storable
// verifiers and checks candidates against them.
type PasswordHasher interface {
	// Hash produces a salted, work-factored verifier for the password.
	// It fails only on internal errors, never on valid input.
	Hash(password string) (string, error)

	// Verify checks the password against a stored verifier. A mismatch is
	// (false, nil), not an error; the error return is reserved for
	// malformed verifiers.
	Verify(password, hash string) (bool, error)
}

// BcryptHasher implements PasswordHasher using bcrypt. The salt is embedded
// in the verifier, so equal passwords produce distinct verifiers.
type BcryptHasher struct {
	cost int
}

// Ensure BcryptHasher implements PasswordHasher at compile time.
var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a hasher with the given cost. A cost outside the
// valid bcrypt range falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash produces a bcrypt verifier for the password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify checks the password against the stored verifier. bcrypt's
// comparison does not short-circuit on prefix mismatch.
func (h *BcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("comparing password: %w", err)
}
