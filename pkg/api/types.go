package api

// Status discriminates the two variants of every response envelope.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// UserInfo is the public identity shape returned by login and verify-token.
// It never carries the credential verifier.
type UserInfo struct {
	Email string `json:"email"`
	ID    string `json:"id"`
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyTokenRequest is the body of POST /api/verify-token.
type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// SetQuoteRequest is the body of POST /api/quote.
type SetQuoteRequest struct {
	Quote string `json:"quote"`
}

// StatusResponse is the envelope for operations that return no payload
// beyond the status (register, set-quote), and for every error result.
type StatusResponse struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// LoginResponse carries the bearer token and identity on success.
type LoginResponse struct {
	Status Status    `json:"status"`
	Error  string    `json:"error,omitempty"`
	Token  string    `json:"token,omitempty"`
	User   *UserInfo `json:"user,omitempty"`
}

// VerifyTokenResponse carries the decoded claims on success.
type VerifyTokenResponse struct {
	Status Status    `json:"status"`
	Error  string    `json:"error,omitempty"`
	User   *UserInfo `json:"user,omitempty"`
}

// QuoteResponse carries the user's quote on success.
type QuoteResponse struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
	Quote  string `json:"quote,omitempty"`
}
