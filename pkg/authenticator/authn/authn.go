package authn

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/vidzel/vidzel/pkg/authenticator"
	"github.com/vidzel/vidzel/pkg/model"
)

// ErrAccountNotFound must be returned by AccountFinder for unknown emails.
var ErrAccountNotFound = errors.New("account not found")

// AccountFinder looks up an account by normalized email.
type AccountFinder interface {
	FindAccountByEmail(ctx context.Context, email string) (*model.Account, error)
}

// dummyHash is compared against when the email is unknown, so a miss costs
// the same bcrypt work as a wrong password.
var dummyHash = sync.OnceValue(func() string {
	password, err := GeneratePassword()
	if err != nil {
		password = "vidzel-dummy-password"
	}
	hash, err := HashPassword(password)
	if err != nil {
		return ""
	}
	return hash
})

var compareMiss = func(password string) {
	_ = CheckPassword(dummyHash(), password)
}

// Authenticator implements email and password authentication
type Authenticator struct {
	accounts AccountFinder
	notFound error
}

// NewPasswordAuthenticator creates a new password authenticator. notFound is
// the error the finder returns for unknown emails.
func NewPasswordAuthenticator(accounts AccountFinder, notFound error) *Authenticator {
	if notFound == nil {
		notFound = ErrAccountNotFound
	}
	return &Authenticator{accounts: accounts, notFound: notFound}
}

// Name returns the authenticator name
func (a *Authenticator) Name() string {
	return "authn"
}

// Authenticate checks the password against the stored bcrypt hash
func (a *Authenticator) Authenticate(ctx context.Context, input authenticator.AuthenticatorInput) (*model.Account, error) {
	email := model.NormalizeEmail(input.Email)
	password := strings.TrimSpace(string(input.Credentials))
	if email == "" || password == "" {
		return nil, authenticator.ErrInvalidCredentials
	}

	account, err := a.accounts.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, a.notFound) {
			compareMiss(password)
			return nil, authenticator.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	if err := CheckPassword(account.PasswordHash, password); err != nil {
		return nil, authenticator.ErrInvalidCredentials
	}

	return account, nil
}

// HashPassword returns the bcrypt hash of a password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a password with its bcrypt hash.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GeneratePassword returns a random URL-safe password for accounts created
// without one.
func GeneratePassword() (string, error) {
	b := make([]byte, 18)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
