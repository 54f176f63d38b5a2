// Package http serves the quotevault API over HTTP. The adapter owns
// routing and JSON serialization; all business decisions stay in the
// account service.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/quotevault/quotevault/pkg/account"
	"github.com/quotevault/quotevault/pkg/api"
	"github.com/quotevault/quotevault/pkg/transport"
)

// Adapter routes API requests to the account service and serializes the
// result envelopes.
type Adapter struct {
	accounts *account.Service
	mux      *http.ServeMux
	config   Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	Addr            string
	MaxBodySize     int64
	ShutdownTimeout int // seconds
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		Addr:            ":4000",
		MaxBodySize:     1 << 20, // 1 MB
		ShutdownTimeout: 30,
	}
}

// NewAdapter creates an HTTP adapter around the account service.
func NewAdapter(accounts *account.Service, cfg Config) *Adapter {
	a := &Adapter{
		accounts: accounts,
		mux:      http.NewServeMux(),
		config:   cfg,
	}

	a.mux.HandleFunc("POST /api/register", a.handleRegister)
	a.mux.HandleFunc("POST /api/login", a.handleLogin)
	a.mux.HandleFunc("POST /api/verify-token", a.handleVerifyToken)
	a.mux.HandleFunc("GET /api/quote", a.handleGetQuote)
	a.mux.HandleFunc("POST /api/quote", a.handleSetQuote)

	return a
}

// Handler returns the http.Handler for this adapter, without middleware.
// Use this to integrate with a Server or test with httptest.
func (a *Adapter) Handler() http.Handler {
	return a.mux
}

// handleRegister handles POST /api/register.
func (a *Adapter) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !a.decode(w, r, &req) {
		return
	}

	if err := a.accounts.Register(r.Context(), req.Email, req.Password); err != nil {
		transport.WriteError(w, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, api.StatusResponse{Status: api.StatusOK})
}

// handleLogin handles POST /api/login.
func (a *Adapter) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !a.decode(w, r, &req) {
		return
	}

	token, user, err := a.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		transport.WriteError(w, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, api.LoginResponse{
		Status: api.StatusOK,
		Token:  token,
		User:   user,
	})
}

// handleVerifyToken handles POST /api/verify-token. The token comes from
// the request body, unlike the quote endpoints which read headers.
func (a *Adapter) handleVerifyToken(w http.ResponseWriter, r *http.Request) {
	var req api.VerifyTokenRequest
	if !a.decode(w, r, &req) {
		return
	}

	user, err := a.accounts.VerifyToken(r.Context(), req.Token)
	if err != nil {
		transport.WriteError(w, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, api.VerifyTokenResponse{
		Status: api.StatusOK,
		User:   user,
	})
}

// handleGetQuote handles GET /api/quote.
func (a *Adapter) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := a.accounts.GetQuote(r.Context(), tokenFromRequest(r))
	if err != nil {
		transport.WriteError(w, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, api.QuoteResponse{
		Status: api.StatusOK,
		Quote:  quote,
	})
}

// handleSetQuote handles POST /api/quote.
func (a *Adapter) handleSetQuote(w http.ResponseWriter, r *http.Request) {
	token := tokenFromRequest(r)

	var req api.SetQuoteRequest
	if !a.decode(w, r, &req) {
		return
	}

	if err := a.accounts.SetQuote(r.Context(), token, req.Quote); err != nil {
		transport.WriteError(w, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, api.StatusResponse{Status: api.StatusOK})
}

// tokenFromRequest extracts the bearer token from the x-access-token
// header (the original client's convention) or an Authorization: Bearer
// header. Returns empty string when neither is present.
func tokenFromRequest(r *http.Request) string {
	if token := r.Header.Get("X-Access-Token"); token != "" {
		return token
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// decode reads a JSON request body into v, enforcing the size limit and
// Content-Type. Writes the error envelope and returns false on failure.
func (a *Adapter) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "application/json") {
		transport.WriteJSON(w, http.StatusUnsupportedMediaType, api.StatusResponse{
			Status: api.StatusError,
			Error:  "Content-Type must be application/json",
		})
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			transport.WriteJSON(w, http.StatusRequestEntityTooLarge, api.StatusResponse{
				Status: api.StatusError,
				Error:  fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize),
			})
			return false
		}
		transport.WriteJSON(w, http.StatusBadRequest, api.StatusResponse{
			Status: api.StatusError,
			Error:  "invalid JSON body",
		})
		return false
	}

	return true
}
