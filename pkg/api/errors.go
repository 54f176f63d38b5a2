package api

import "fmt"

// ErrorKind categorizes a failed operation. Kinds stay distinct internally
// so callers and logs can tell them apart; the user-facing message collapses
// token_invalid and token_expired on purpose to avoid leaking which part of
// verification failed.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindAuth         ErrorKind = "auth"
	KindTokenInvalid ErrorKind = "token_invalid"
	KindTokenExpired ErrorKind = "token_expired"
	KindTokenMissing ErrorKind = "token_missing"
	KindNotFound     ErrorKind = "not_found"
	KindUnavailable  ErrorKind = "unavailable"
)

// Error is a structured operation failure with a kind and a user-facing
// message. The message is what ends up in the response envelope.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewValidationError creates an Error for rejected input (e.g. duplicate email).
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewAuthError creates an Error for failed credential checks.
func NewAuthError(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// NewTokenError creates an Error for token verification failures.
// The kind records whether the token was malformed/forged or expired.
func NewTokenError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewNotFoundError creates an Error for resources that no longer exist.
func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewUnavailableError creates an Error for repository or infrastructure
// failures. The message stays generic; details belong in the log.
func NewUnavailableError(message string) *Error {
	return &Error{Kind: KindUnavailable, Message: message}
}
