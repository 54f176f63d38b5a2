package auth

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Sentinel errors for token verification. Expired and invalid are distinct
// so tests and logs can tell them apart; callers typically collapse both
// into one unauthenticated outcome.
var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the decoded payload of a session token: the identity the
// bearer is treated as.
type Claims struct {
	Email  string `json:"email"`
	UserID string `json:"id"`
	jwtlib.RegisteredClaims
}

// TokenService issues and verifies signed, expiring session tokens.
// The signing secret is fixed at construction and is the single source of
// truth for both operations; a token issued here is always verifiable here.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service signing with the given secret.
func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret}
}

// Issue produces a signed HS256 token carrying the claims, expiring ttl
// from now.
func (s *TokenService) Issue(email, userID string, ttl time.Duration) (string, error) {
	claims := Claims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Verify decodes the token, checks the signature and expiry, and returns
// the claims. Returns ErrTokenExpired past expiry and ErrTokenInvalid for
// everything else (bad signature, malformed structure, wrong algorithm).
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwtlib.ParseWithClaims(tokenStr, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}))

	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %s", ErrTokenInvalid, err)
	}

	if !token.Valid || claims.Email == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
