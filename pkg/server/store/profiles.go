package store

import (
	"context"

	"github.com/vidzel/vidzel/pkg/model"
)

// ProfileFilter narrows ListProfiles. Empty fields match everything.
type ProfileFilter struct {
	Roles []model.Role
	// Query is matched case-insensitively against name, skills and role
	Query string
	Limit int
}

// ProfilesStore abstracts profile storage operations
type ProfilesStore interface {
	// GetProfile returns the profile joined with its account.
	// Returns ErrProfileNotFound if the user has no profile.
	GetProfile(ctx context.Context, userID string) (*model.ProfileWithAccount, error)

	// SaveProfile creates or replaces the profile row.
	SaveProfile(ctx context.Context, profile *model.Profile) error

	// ListProfiles returns non-organization profiles matching the filter
	ListProfiles(ctx context.Context, filter ProfileFilter) ([]model.ProfileWithAccount, error)
}
