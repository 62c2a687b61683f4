package identity

import (
	"context"
	"net"
	"time"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/token"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated account for a request.
type Identity struct {
	// Token claims
	AccountID string
	Email     string
	Name      string
	Role      model.Role
	IssuedAt  time.Time
	ExpiresAt time.Time

	// Request context
	RemoteIP  net.IP
	RequestID string
}

// FromClaims creates an Identity from verified session token claims.
func FromClaims(c *token.Claims) *Identity {
	id := &Identity{
		AccountID: c.Subject,
		Email:     c.Email,
		Name:      c.Name,
		Role:      c.Role,
	}
	if c.IssuedAt != nil {
		id.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	return id
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// WithRequestID sets the request id assigned by the request id middleware.
func (i *Identity) WithRequestID(requestID string) *Identity {
	i.RequestID = requestID
	return i
}

// IsOrganization returns true for organization accounts.
func (i *Identity) IsOrganization() bool {
	return i.Role == model.RoleOrganization
}

// Account returns the identity as an account value for ownership checks.
func (i *Identity) Account() *model.Account {
	return &model.Account{
		ID:    i.AccountID,
		Name:  i.Name,
		Email: i.Email,
		Role:  i.Role,
	}
}

// ClientIP returns the remote IP as a string, or "" when unknown.
func (i *Identity) ClientIP() string {
	if i.RemoteIP == nil {
		return ""
	}
	return i.RemoteIP.String()
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
