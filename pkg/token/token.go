// Package token issues and verifies Vidzel session tokens.
//
// Tokens are HS256 JWTs whose subject is the account id. The signing key is
// a random 256-bit secret supplied base64-encoded via VIDZEL_TOKEN_KEY.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vidzel/vidzel/pkg/model"
)

const (
	// Issuer is the iss claim of every session token.
	Issuer = "vidzel"

	// KeySize is the length in bytes of a generated signing key.
	KeySize = 32
)

var (
	ErrKeyTooShort  = errors.New("token signing key must be at least 32 bytes")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims are the session token claims.
type Claims struct {
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Signer issues and parses session tokens with a shared HMAC key.
type Signer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewSigner creates a Signer. ttl is the lifetime of issued tokens.
func NewSigner(key []byte, ttl time.Duration) (*Signer, error) {
	if len(key) < KeySize {
		return nil, ErrKeyTooShort
	}
	return &Signer{key: key, ttl: ttl, now: time.Now}, nil
}

// WithClock replaces the time source, for tests.
func (s *Signer) WithClock(now func() time.Time) *Signer {
	s.now = now
	return s
}

// Issue signs a token for the account.
func (s *Signer) Issue(account *model.Account) (string, *Claims, error) {
	now := s.now().UTC().Truncate(time.Second)
	claims := &Claims{
		Email: account.Email,
		Name:  account.Name,
		Role:  account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse verifies the signature, issuer and expiry of a token.
func (s *Signer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}

// GenerateKey returns a new random signing key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// KeyFromEnv decodes VIDZEL_TOKEN_KEY.
func KeyFromEnv() ([]byte, error) {
	encoded, ok := os.LookupEnv("VIDZEL_TOKEN_KEY")
	if !ok || encoded == "" {
		return nil, fmt.Errorf("VIDZEL_TOKEN_KEY environment variable is required")
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid VIDZEL_TOKEN_KEY: %w", err)
	}
	if len(key) < KeySize {
		return nil, ErrKeyTooShort
	}
	return key, nil
}
