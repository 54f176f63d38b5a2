package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/quotevault/quotevault/pkg/account"
	"github.com/quotevault/quotevault/pkg/api"
	"github.com/quotevault/quotevault/pkg/auth"
	"github.com/quotevault/quotevault/pkg/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerTTL(t, time.Hour)
}

func newTestServerTTL(t *testing.T, ttl time.Duration) *httptest.Server {
	t.Helper()

	svc := account.New(account.Config{
		Store:    memory.New(),
		Hasher:   auth.NewBcryptHasher(bcrypt.MinCost),
		Tokens:   auth.NewTokenService([]byte("test-secret")),
		TokenTTL: ttl,
	})

	adapter := NewAdapter(svc, DefaultConfig())
	ts := httptest.NewServer(adapter.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	return resp, buf.Bytes()
}

func getQuote(t *testing.T, ts *httptest.Server, token string) (*http.Response, api.QuoteResponse) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/quote", nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if token != "" {
		req.Header.Set("X-Access-Token", token)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out api.QuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp, out
}

// register creates a user and fails the test on any non-ok outcome.
func register(t *testing.T, ts *httptest.Server, email, password string) {
	t.Helper()

	resp, body := postJSON(t, ts, "/api/register", api.RegisterRequest{Email: email, Password: password}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register status = %d, body %s", resp.StatusCode, body)
	}
}

// login returns the issued token, failing the test on error.
func login(t *testing.T, ts *httptest.Server, email, password string) string {
	t.Helper()

	resp, body := postJSON(t, ts, "/api/login", api.LoginRequest{Email: email, Password: password}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, body %s", resp.StatusCode, body)
	}

	var out api.LoginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	if out.Token == "" {
		t.Fatal("login returned empty token")
	}
	return out.Token
}

func TestFullFlow(t *testing.T) {
	ts := newTestServer(t)

	register(t, ts, "alice@example.com", "Secret#1")
	token := login(t, ts, "alice@example.com", "Secret#1")

	// Fresh user has an empty quote.
	resp, quote := getQuote(t, ts, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get quote status = %d", resp.StatusCode)
	}
	if quote.Quote != "" {
		t.Errorf("initial quote = %q, want empty", quote.Quote)
	}

	resp, body := postJSON(t, ts, "/api/quote", api.SetQuoteRequest{Quote: "carpe diem"},
		map[string]string{"X-Access-Token": token})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set quote status = %d, body %s", resp.StatusCode, body)
	}

	_, quote = getQuote(t, ts, token)
	if quote.Quote != "carpe diem" {
		t.Errorf("quote = %q, want %q", quote.Quote, "carpe diem")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	ts := newTestServer(t)

	register(t, ts, "dupe@example.com", "pw")

	resp, body := postJSON(t, ts, "/api/register", api.RegisterRequest{Email: "dupe@example.com", Password: "other"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	var out api.StatusResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.Status != api.StatusError {
		t.Errorf("status field = %q, want %q", out.Status, api.StatusError)
	}
	if out.Error != "Duplicate email" {
		t.Errorf("error = %q, want %q", out.Error, "Duplicate email")
	}
}

func TestLoginFailures(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "bob@example.com", "correct")

	tests := []struct {
		name     string
		email    string
		password string
		wantMsg  string
	}{
		{"unknown email", "nobody@example.com", "whatever", "Invalid login"},
		{"wrong password", "bob@example.com", "incorrect", "Invalid password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postJSON(t, ts, "/api/login", api.LoginRequest{Email: tt.email, Password: tt.password}, nil)
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
			}

			var out api.LoginResponse
			if err := json.Unmarshal(body, &out); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if out.Error != tt.wantMsg {
				t.Errorf("error = %q, want %q", out.Error, tt.wantMsg)
			}
			if out.Token != "" {
				t.Error("failed login must not return a token")
			}
		})
	}
}

func TestVerifyToken(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "carol@example.com", "pw")
	token := login(t, ts, "carol@example.com", "pw")

	resp, body := postJSON(t, ts, "/api/verify-token", api.VerifyTokenRequest{Token: token}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}

	var out api.VerifyTokenResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.User == nil || out.User.Email != "carol@example.com" {
		t.Errorf("user = %+v, want email carol@example.com", out.User)
	}
}

func TestVerifyTokenMissing(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts, "/api/verify-token", api.VerifyTokenRequest{}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}

	var out api.VerifyTokenResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.Error != "No token provided" {
		t.Errorf("error = %q, want %q", out.Error, "No token provided")
	}
}

func TestVerifyTokenForged(t *testing.T) {
	ts := newTestServer(t)

	other := auth.NewTokenService([]byte("wrong-secret"))
	forged, err := other.Issue("mallory@example.com", "fake-id", time.Hour)
	if err != nil {
		t.Fatalf("issuing forged token: %v", err)
	}

	resp, body := postJSON(t, ts, "/api/verify-token", api.VerifyTokenRequest{Token: forged}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
	if !strings.Contains(string(body), "Invalid token") {
		t.Errorf("body = %s, want message %q", body, "Invalid token")
	}
}

func TestQuoteWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	resp, out := getQuote(t, ts, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
	if out.Error != "invalid token" {
		t.Errorf("error = %q, want %q", out.Error, "invalid token")
	}
}

func TestQuoteExpiredToken(t *testing.T) {
	ts := newTestServerTTL(t, -time.Minute)

	register(t, ts, "dave@example.com", "pw")
	token := login(t, ts, "dave@example.com", "pw")

	resp, out := getQuote(t, ts, token)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
	if out.Error != "invalid token" {
		t.Errorf("error = %q, want %q", out.Error, "invalid token")
	}
}

func TestAuthorizationBearerHeader(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "erin@example.com", "pw")
	token := login(t, ts, "erin@example.com", "pw")

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/quote", nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestInvalidJSONBody(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Post(ts.URL+"/api/register", "application/json",
		strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestWrongContentType(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Post(ts.URL+"/api/register", "text/plain",
		strings.NewReader(`{"email":"x@example.com","password":"pw"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnsupportedMediaType)
	}
}

func TestBodyTooLarge(t *testing.T) {
	svc := account.New(account.Config{
		Store:  memory.New(),
		Hasher: auth.NewBcryptHasher(bcrypt.MinCost),
		Tokens: auth.NewTokenService([]byte("test-secret")),
	})
	small := NewAdapter(svc, Config{Addr: ":0", MaxBodySize: 64, ShutdownTimeout: 1})
	tiny := httptest.NewServer(small.Handler())
	defer tiny.Close()

	big := `{"email":"` + strings.Repeat("a", 200) + `@example.com","password":"pw"}`
	resp, err := tiny.Client().Post(tiny.URL+"/api/register", "application/json", strings.NewReader(big))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusRequestEntityTooLarge)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/api/register")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
	}
}
