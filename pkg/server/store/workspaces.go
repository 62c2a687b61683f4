package store

import (
	"context"

	"github.com/vidzel/vidzel/pkg/model"
)

// WorkspacesStore abstracts workspace and membership storage operations
type WorkspacesStore interface {
	// EnsureWorkspace returns the project's workspace, creating an active
	// one if none exists yet.
	EnsureWorkspace(ctx context.Context, project *model.Project) (*model.Workspace, error)

	// GetWorkspace returns ErrWorkspaceNotFound for unknown ids
	GetWorkspace(ctx context.Context, id string) (*model.Workspace, error)

	// GetProjectWorkspace returns ErrWorkspaceNotFound when the project has
	// no workspace yet.
	GetProjectWorkspace(ctx context.Context, projectID string) (*model.Workspace, error)

	// ListOrganizationWorkspaces returns the workspaces of the org's projects
	ListOrganizationWorkspaces(ctx context.Context, org *model.Account) ([]model.Workspace, error)

	// ListMemberWorkspaces returns the workspaces the user has joined
	ListMemberWorkspaces(ctx context.Context, userID string) ([]model.Workspace, error)

	// ListMembers returns a workspace's members in join order
	ListMembers(ctx context.Context, workspaceID string) ([]model.WorkspaceMember, error)

	// GetMember returns ErrMemberNotFound when the user is not a member
	GetMember(ctx context.Context, workspaceID, userID string) (*model.WorkspaceMember, error)

	// ListMemberships returns every membership of the user
	ListMemberships(ctx context.Context, userID string) ([]model.WorkspaceMember, error)
}
