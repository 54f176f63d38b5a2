// Package memory provides an in-memory implementation of storage.UserStore
// for testing and lightweight deployments. Users are stored in memory and
// lost when the process restarts.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/quotevault/quotevault/pkg/storage"
)

// Store is an in-memory UserStore. The mutex makes the email uniqueness
// check atomic, so concurrent registrations for the same email resolve to
// exactly one success.
type Store struct {
	mu    sync.RWMutex
	users map[string]*storage.User // keyed by email, case-sensitive
}

// Ensure Store implements storage.UserStore at compile time.
var _ storage.UserStore = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users: make(map[string]*storage.User),
	}
}

// CreateUser inserts a new user. Returns storage.ErrDuplicateEmail if the
// email is already registered.
func (s *Store) CreateUser(_ context.Context, email, passwordHash string) (*storage.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return nil, storage.ErrDuplicateEmail
	}

	u := &storage.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	s.users[email] = u

	cp := *u
	return &cp, nil
}

// GetUserByEmail returns a copy of the user, or storage.ErrNotFound.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*storage.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return nil, storage.ErrNotFound
	}

	cp := *u
	return &cp, nil
}

// UpdateQuote sets the quote for the user with the given email.
func (s *Store) UpdateQuote(_ context.Context, email, quote string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return storage.ErrNotFound
	}

	u.Quote = quote
	return nil
}

// HealthCheck always returns nil for the in-memory store.
func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
