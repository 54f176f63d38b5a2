// Package postgres provides a PostgreSQL implementation of storage.UserStore.
// It uses pgx/v5 for connection pooling and relies on a unique index on the
// email column to enforce registration uniqueness atomically.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quotevault/quotevault/pkg/debug"
	"github.com/quotevault/quotevault/pkg/storage"
)

// Store is a PostgreSQL-backed UserStore.
type Store struct {
	pool *pgxpool.Pool
}

// Ensure Store implements storage.UserStore at compile time.
var _ storage.UserStore = (*Store)(nil)

// New creates a new PostgreSQL store with the given configuration.
// If MigrateOnStart is true, schema migrations are applied automatically.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connectivity.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{pool: pool}
	debug.Log("storage", "connected", "max_conns", cfg.MaxConns)

	if cfg.MigrateOnStart {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

// CreateUser inserts a new user with a fresh UUID. The unique index on
// email turns a concurrent duplicate insert into storage.ErrDuplicateEmail.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (*storage.User, error) {
	u := &storage.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, quote)
		VALUES ($1, $2, $3, '')
	`, u.ID, u.Email, u.PasswordHash)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, storage.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	return u, nil
}

// GetUserByEmail retrieves a user by email, or storage.ErrNotFound.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*storage.User, error) {
	var u storage.User

	err := s.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, quote
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Quote)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return &u, nil
}

// UpdateQuote sets the quote column for the user with the given email.
func (s *Store) UpdateQuote(ctx context.Context, email, quote string) error {
	result, err := s.pool.Exec(ctx,
		"UPDATE users SET quote = $1 WHERE email = $2",
		quote, email,
	)
	if err != nil {
		return fmt.Errorf("updating quote: %w", err)
	}

	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// HealthCheck verifies the database connection.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
