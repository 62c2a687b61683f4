package middleware

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/vidzel/vidzel/pkg/identity"
	"github.com/vidzel/vidzel/pkg/token"
)

// Authenticator is middleware that validates bearer session tokens
type Authenticator struct {
	Signer *token.Signer
	// TrustedProxy decides whether X-Forwarded-For may be used; nil trusts nobody
	TrustedProxy func(ip string) bool
}

// NewAuthenticator creates a new session token middleware
func NewAuthenticator(signer *token.Signer, trusted func(ip string) bool) *Authenticator {
	return &Authenticator{Signer: signer, TrustedProxy: trusted}
}

// Middleware rejects requests without a valid token and stores the caller's
// identity in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Authorization missing")
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			writeError(w, http.StatusUnauthorized, "Malformed authorization header")
			return
		}

		claims, err := a.Signer.Parse(strings.TrimSpace(tokenString))
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				writeError(w, http.StatusUnauthorized, "Token expired")
				return
			}
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		id := identity.FromClaims(claims).
			WithRemoteIP(net.ParseIP(ClientIP(r, a.TrustedProxy))).
			WithRequestID(GetRequestID(r.Context()))

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}
