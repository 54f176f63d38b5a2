// Package account implements the authentication orchestrator: the single
// component the transport layer calls. It composes the password hasher,
// the token service, and the user store into the register, login,
// verify-token, and quote operations.
//
// Every failure crossing this boundary is an *api.Error with a stable
// user-facing message; internal causes go to the structured log only.
package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/quotevault/quotevault/pkg/api"
	"github.com/quotevault/quotevault/pkg/auth"
	"github.com/quotevault/quotevault/pkg/debug"
	"github.com/quotevault/quotevault/pkg/observability"
	"github.com/quotevault/quotevault/pkg/storage"
)

// DefaultTokenTTL is the session token lifetime used when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// User-facing error messages. These are part of the API surface: clients
// match on them, so they stay byte-for-byte stable.
const (
	msgDuplicateEmail  = "Duplicate email"
	msgInvalidLogin    = "Invalid login"
	msgInvalidPassword = "Invalid password"
	msgNoToken         = "No token provided"
	msgInvalidToken    = "Invalid token"
	msgInvalidQuoteTok = "invalid token"
	msgUserNotFound    = "User not found"
	msgInternal        = "Internal error"
)

// Service orchestrates authentication and quote access.
type Service struct {
	store    storage.UserStore
	hasher   auth.PasswordHasher
	tokens   *auth.TokenService
	tokenTTL time.Duration
	logger   *slog.Logger
}

// Config holds the orchestrator's collaborators and settings.
type Config struct {
	Store    storage.UserStore
	Hasher   auth.PasswordHasher
	Tokens   *auth.TokenService
	TokenTTL time.Duration // default: DefaultTokenTTL
	Logger   *slog.Logger  // default: slog.Default()
}

// New creates the account service.
func New(cfg Config) *Service {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Service{
		store:    cfg.Store,
		hasher:   cfg.Hasher,
		tokens:   cfg.Tokens,
		tokenTTL: cfg.TokenTTL,
		logger:   cfg.Logger,
	}
}

// Register creates a new user from email and password. The plaintext is
// hashed before it reaches the store; only uniqueness is validated.
func (s *Service) Register(ctx context.Context, email, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return api.NewUnavailableError(msgInternal)
	}

	if _, err := s.store.CreateUser(ctx, email, hash); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return api.NewValidationError(msgDuplicateEmail)
		}
		s.logger.Error("user creation failed", "error", err)
		return api.NewUnavailableError(msgInternal)
	}

	s.logger.Info("user registered", "email", email)
	return nil
}

// Login verifies the credentials and, on success, issues a session token.
// Unknown email and wrong password return distinct messages, matching the
// original API.
func (s *Service) Login(ctx context.Context, email, password string) (string, *api.UserInfo, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			observability.AuthFailuresTotal.WithLabelValues("unknown_email").Inc()
			return "", nil, api.NewAuthError(msgInvalidLogin)
		}
		s.logger.Error("user lookup failed", "error", err)
		return "", nil, api.NewUnavailableError(msgInternal)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Error("password verification failed", "error", err)
		return "", nil, api.NewUnavailableError(msgInternal)
	}
	if !ok {
		observability.AuthFailuresTotal.WithLabelValues("wrong_password").Inc()
		return "", nil, api.NewAuthError(msgInvalidPassword)
	}

	token, err := s.tokens.Issue(user.Email, user.ID, s.tokenTTL)
	if err != nil {
		s.logger.Error("token issuance failed", "error", err)
		return "", nil, api.NewUnavailableError(msgInternal)
	}

	observability.TokensIssuedTotal.Inc()
	return token, &api.UserInfo{Email: user.Email, ID: user.ID}, nil
}

// VerifyToken checks a presented token and returns its claims. An absent
// token gets its own message; expired and forged tokens collapse to one.
func (s *Service) VerifyToken(_ context.Context, token string) (*api.UserInfo, error) {
	if token == "" {
		return nil, api.NewTokenError(api.KindTokenMissing, msgNoToken)
	}

	claims, err := s.verify(token, msgInvalidToken)
	if err != nil {
		return nil, err
	}

	return &api.UserInfo{Email: claims.Email, ID: claims.UserID}, nil
}

// GetQuote resolves the token's identity and returns that user's quote.
// A validly-signed token whose user no longer exists yields a not-found
// error rather than an empty quote.
func (s *Service) GetQuote(ctx context.Context, token string) (string, error) {
	claims, err := s.verify(token, msgInvalidQuoteTok)
	if err != nil {
		return "", err
	}

	user, err := s.store.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("valid token for missing user", "email", claims.Email)
			return "", api.NewNotFoundError(msgUserNotFound)
		}
		s.logger.Error("user lookup failed", "error", err)
		return "", api.NewUnavailableError(msgInternal)
	}

	return user.Quote, nil
}

// SetQuote resolves the token's identity and updates that user's quote.
func (s *Service) SetQuote(ctx context.Context, token, quote string) error {
	claims, err := s.verify(token, msgInvalidQuoteTok)
	if err != nil {
		return err
	}

	if err := s.store.UpdateQuote(ctx, claims.Email, quote); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("valid token for missing user", "email", claims.Email)
			return api.NewNotFoundError(msgUserNotFound)
		}
		s.logger.Error("quote update failed", "error", err)
		return api.NewUnavailableError(msgInternal)
	}

	return nil
}

// verify runs token verification and maps the outcome to an api.Error with
// the given user-facing message. The expired/invalid distinction survives
// in the error kind.
func (s *Service) verify(token, message string) (*auth.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			observability.AuthFailuresTotal.WithLabelValues("token_expired").Inc()
			return nil, api.NewTokenError(api.KindTokenExpired, message)
		}
		observability.AuthFailuresTotal.WithLabelValues("token_invalid").Inc()
		return nil, api.NewTokenError(api.KindTokenInvalid, message)
	}
	debug.Log("auth", "token verified", "email", claims.Email)
	return claims, nil
}
