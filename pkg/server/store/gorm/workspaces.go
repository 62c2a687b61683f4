package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server/store"
)

var _ store.WorkspacesStore = (*WorkspacesStore)(nil)

// WorkspacesStore implements store.WorkspacesStore using GORM
type WorkspacesStore struct {
	db *gorm.DB
}

// NewWorkspacesStore creates a new WorkspacesStore
func NewWorkspacesStore(db *gorm.DB) *WorkspacesStore {
	return &WorkspacesStore{db: db}
}

// EnsureWorkspace is idempotent: repeated calls return the same workspace
func (s *WorkspacesStore) EnsureWorkspace(ctx context.Context, project *model.Project) (*model.Workspace, error) {
	return ensureWorkspace(s.db.WithContext(ctx), project, time.Now().UTC())
}

func (s *WorkspacesStore) GetWorkspace(ctx context.Context, id string) (*model.Workspace, error) {
	var ws model.Workspace
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&ws).Error; err != nil {
		return nil, notFound(err, store.ErrWorkspaceNotFound)
	}
	return &ws, nil
}

func (s *WorkspacesStore) GetProjectWorkspace(ctx context.Context, projectID string) (*model.Workspace, error) {
	var ws model.Workspace
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).First(&ws).Error; err != nil {
		return nil, notFound(err, store.ErrWorkspaceNotFound)
	}
	return &ws, nil
}

func (s *WorkspacesStore) ListOrganizationWorkspaces(ctx context.Context, org *model.Account) ([]model.Workspace, error) {
	cond, args := ownedByOrg("", org)
	var workspaces []model.Workspace
	if err := s.db.WithContext(ctx).Where(cond, args...).Order("created_at DESC").Find(&workspaces).Error; err != nil {
		return nil, err
	}
	return workspaces, nil
}

func (s *WorkspacesStore) ListMemberWorkspaces(ctx context.Context, userID string) ([]model.Workspace, error) {
	var workspaces []model.Workspace
	err := s.db.WithContext(ctx).
		Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ?", userID).
		Order("workspaces.created_at DESC").
		Find(&workspaces).Error
	if err != nil {
		return nil, err
	}
	return workspaces, nil
}

func (s *WorkspacesStore) ListMembers(ctx context.Context, workspaceID string) ([]model.WorkspaceMember, error) {
	var members []model.WorkspaceMember
	if err := s.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Order("joined_at ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (s *WorkspacesStore) GetMember(ctx context.Context, workspaceID, userID string) (*model.WorkspaceMember, error) {
	var m model.WorkspaceMember
	err := s.db.WithContext(ctx).Where("workspace_id = ? AND user_id = ?", workspaceID, userID).First(&m).Error
	if err != nil {
		return nil, notFound(err, store.ErrMemberNotFound)
	}
	return &m, nil
}

func (s *WorkspacesStore) ListMemberships(ctx context.Context, userID string) ([]model.WorkspaceMember, error) {
	var members []model.WorkspaceMember
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("joined_at ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
