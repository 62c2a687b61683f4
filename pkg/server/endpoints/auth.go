package endpoints

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vidzel/vidzel/pkg/audit"
	"github.com/vidzel/vidzel/pkg/authenticator"
	"github.com/vidzel/vidzel/pkg/authenticator/authn"
	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server"
	"github.com/vidzel/vidzel/pkg/server/middleware"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Account   *model.Account `json:"account"`
}

// WhoamiResponse describes the authenticated caller
type WhoamiResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	ClientIP  string     `json:"clientIp,omitempty"`
	IssuedAt  time.Time  `json:"issuedAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// RegisterAuthEndpoints registers signup, login and whoami. Signup and login
// share the per-IP rate limiter.
func RegisterAuthEndpoints(s *server.Server) {
	public := s.Router.NewRoute().Subrouter()
	public.Use(s.AuthLimiter.Limit)
	public.HandleFunc("/signup", handleSignup(s)).Methods("POST")
	public.HandleFunc("/login", handleLogin(s)).Methods("POST")

	whoami := s.Router.PathPrefix("/whoami").Subrouter()
	whoami.Use(s.AuthMiddleware.Middleware)
	whoami.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleSignup(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		trimAll(&req.Name, &req.Password)
		req.Email = model.NormalizeEmail(req.Email)
		if req.Name == "" || req.Email == "" || req.Password == "" {
			respondWithError(w, http.StatusBadRequest, "Please fill in all fields")
			return
		}

		clientIP := middleware.ClientIP(r, s.Config.IsTrustedProxy)
		role := model.NormalizeRole(strings.ToLower(req.Role))

		hash, err := authn.HashPassword(req.Password)
		if err != nil {
			respondWithInternalError(s, w, r, err)
			return
		}

		createdAt := now()
		account := &model.Account{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         role,
			CreatedAt:    createdAt,
		}
		var profile *model.Profile
		if !account.IsOrganization() {
			profile = &model.Profile{FullName: req.Name, UpdatedAt: createdAt}
		}

		if err := s.Stores.Accounts.CreateAccount(r.Context(), account, profile); err != nil {
			audit.Log(audit.SignupEvent{
				Email:        req.Email,
				Role:         role.String(),
				ClientIP:     clientIP,
				ErrorMessage: err.Error(),
			})
			respondWithStoreError(s, w, r, err)
			return
		}

		tokenString, claims, err := s.Signer.Issue(account)
		if err != nil {
			respondWithInternalError(s, w, r, err)
			return
		}

		s.Metrics.Signup(role.String())
		audit.Log(audit.SignupEvent{
			AccountID: account.ID,
			Email:     account.Email,
			Role:      role.String(),
			ClientIP:  clientIP,
			Success:   true,
		})
		s.Logger.Info("account created",
			zap.String("account_id", account.ID),
			zap.Stringer("role", role),
		)

		respondWithJSON(w, http.StatusCreated, AuthResponse{
			Token:     tokenString,
			ExpiresAt: claims.ExpiresAt.Time,
			Account:   account,
		})
	}
}

func handleLogin(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.Email = model.NormalizeEmail(req.Email)
		clientIP := middleware.ClientIP(r, s.Config.IsTrustedProxy)

		password, ok := s.Authenticators.Get("authn")
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Authenticator not enabled")
			return
		}

		account, err := password.Authenticate(r.Context(), authenticator.AuthenticatorInput{
			Email:       req.Email,
			Credentials: []byte(req.Password),
			ClientIP:    clientIP,
		})
		if err != nil {
			audit.Log(audit.AuthenticateEvent{
				Email:             req.Email,
				ClientIP:          clientIP,
				AuthenticatorName: password.Name(),
				ErrorMessage:      err.Error(),
			})
			if errors.Is(err, authenticator.ErrInvalidCredentials) {
				respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
				return
			}
			respondWithInternalError(s, w, r, err)
			return
		}

		tokenString, claims, err := s.Signer.Issue(account)
		if err != nil {
			respondWithInternalError(s, w, r, err)
			return
		}

		audit.Log(audit.AuthenticateEvent{
			Email:             account.Email,
			ClientIP:          clientIP,
			AuthenticatorName: password.Name(),
			Success:           true,
		})

		respondWithJSON(w, http.StatusOK, AuthResponse{
			Token:     tokenString,
			ExpiresAt: claims.ExpiresAt.Time,
			Account:   account,
		})
	}
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := caller(r)
		respondWithJSON(w, http.StatusOK, WhoamiResponse{
			ID:        id.AccountID,
			Name:      id.Name,
			Email:     id.Email,
			Role:      id.Role,
			ClientIP:  id.ClientIP(),
			IssuedAt:  id.IssuedAt,
			ExpiresAt: id.ExpiresAt,
		})
	}
}
