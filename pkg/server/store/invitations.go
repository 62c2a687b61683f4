package store

import (
	"context"
	"time"

	"github.com/vidzel/vidzel/pkg/model"
)

// InvitationsStore abstracts invitation storage operations
type InvitationsStore interface {
	// CreateInvitation inserts a pending invitation together with the
	// invitee's notification. Returns ErrAlreadyInvited on duplicates.
	CreateInvitation(ctx context.Context, inv *model.Invitation, notice *model.Notification) error

	GetInvitation(ctx context.Context, id string) (*model.Invitation, error)

	// ListReceivedInvitations returns invitations sent to the user, newest first
	ListReceivedInvitations(ctx context.Context, userID string) ([]model.Invitation, error)

	// ListSentInvitations returns invitations the organization sent, newest first
	ListSentInvitations(ctx context.Context, org *model.Account) ([]model.Invitation, error)

	// AcceptInvitation marks the invitation accepted, provisions the
	// workspace and membership, and notifies the invitee in one transaction.
	// Returns ErrNotPending when the invitation was already answered.
	AcceptInvitation(ctx context.Context, id string, invitee *model.Account, now time.Time) (*model.Workspace, error)

	// DeclineInvitation marks a pending invitation declined
	DeclineInvitation(ctx context.Context, id string, now time.Time) error
}
