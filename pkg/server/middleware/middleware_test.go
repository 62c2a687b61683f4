package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidzel/vidzel/pkg/identity"
	"github.com/vidzel/vidzel/pkg/metrics"
	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/token"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generates one", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("keeps the caller's", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})
}

func TestClientIP(t *testing.T) {
	trusted := func(ip string) bool { return strings.HasPrefix(ip, "10.") }

	tests := []struct {
		name      string
		remote    string
		forwarded string
		trusted   func(string) bool
		expected  string
	}{
		{"direct", "203.0.113.7:5555", "", trusted, "203.0.113.7"},
		{"untrusted peer ignores header", "203.0.113.7:5555", "198.51.100.1", trusted, "203.0.113.7"},
		{"no trust function", "10.0.0.1:5555", "198.51.100.1", nil, "10.0.0.1"},
		{"trusted proxy", "10.0.0.1:5555", "198.51.100.1", trusted, "198.51.100.1"},
		{"spoofed leftmost entry", "10.0.0.1:5555", "1.1.1.1, 198.51.100.1, 10.0.0.2", trusted, "198.51.100.1"},
		{"all trusted", "10.0.0.1:5555", "10.0.0.3", trusted, "10.0.0.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.expected, ClientIP(req, tt.trusted))
		})
	}
}

func TestAuthenticator(t *testing.T) {
	signer, err := token.NewSigner(testKey, time.Hour)
	require.NoError(t, err)
	account := &model.Account{ID: "u1", Name: "Ada", Email: "ada@example.org", Role: model.RoleMentor}
	valid, _, err := signer.Issue(account)
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	expiredSigner, err := token.NewSigner(testKey, time.Minute)
	require.NoError(t, err)
	expired, _, err := expiredSigner.WithClock(func() time.Time { return past }).Issue(account)
	require.NoError(t, err)

	var got *identity.Identity
	h := NewAuthenticator(signer, nil).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = identity.Get(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name    string
		header  string
		code    int
		message string
	}{
		{"missing", "", http.StatusUnauthorized, "Authorization missing"},
		{"wrong scheme", "Token token=\"abc\"", http.StatusUnauthorized, "Malformed authorization header"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "Malformed authorization header"},
		{"garbage", "Bearer not.a.jwt", http.StatusUnauthorized, "Invalid token"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "Token expired"},
		{"valid", "Bearer " + valid, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = nil
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.RemoteAddr = "192.0.2.10:1234"
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			if tt.message != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.message, body["error"])
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, "u1", got.AccountID)
			assert.Equal(t, model.RoleMentor, got.Role)
			assert.Equal(t, "192.0.2.10", got.ClientIP())
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, nil, nil)
	h := rl.Limit(http.HandlerFunc(okHandler))

	do := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("198.51.100.1:1").Code)
	assert.Equal(t, http.StatusOK, do("198.51.100.1:2").Code)

	rec := do("198.51.100.1:3")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do("198.51.100.2:1").Code, "buckets are per client")
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := NewRateLimiter(1, 1, nil, nil)
	now := time.Now()
	rl.limiter("a", now.Add(-time.Hour))
	rl.limiter("b", now)

	rl.Sweep(now)

	assert.NotContains(t, rl.limiters, "a")
	assert.Contains(t, rl.limiters, "b")
}

func TestInstrument(t *testing.T) {
	m := metrics.New()
	router := mux.NewRouter()
	router.Use(Instrument(m))
	router.HandleFunc("/projects/{id}", okHandler).Methods(http.MethodGet)

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/"+id, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	count, err := testutil.GatherAndCount(m.Registry(), "vidzel_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
