package model

import (
	"strings"
	"time"
)

// Workspace is the collaboration space of a single project.
type Workspace struct {
	ID                string          `gorm:"column:id;primaryKey" json:"id"`
	ProjectID         string          `gorm:"column:project_id;not null;uniqueIndex" json:"projectId"`
	ProjectTitle      string          `gorm:"column:project_title" json:"projectTitle"`
	OrganizationID    string          `gorm:"column:organization_id" json:"organizationId"`
	OrganizationEmail string          `gorm:"column:organization_email" json:"organizationEmail"`
	Status            WorkspaceStatus `gorm:"column:status;type:text;not null" json:"status"`
	CreatedAt         time.Time       `gorm:"column:created_at" json:"createdAt"`
	CompletedAt       *time.Time      `gorm:"column:completed_at" json:"completedAt,omitempty"`
}

func (Workspace) TableName() string {
	return "workspaces"
}

// IsArchived reports whether the workspace is read-only.
func (w *Workspace) IsArchived() bool {
	return w.Status == WorkspaceStatusCompleted
}

// OwnedBy reports whether the account is the owning organization.
func (w *Workspace) OwnedBy(a *Account) bool {
	if a == nil || !a.IsOrganization() {
		return false
	}
	if w.OrganizationID != "" && w.OrganizationID == a.ID {
		return true
	}
	return w.OrganizationEmail != "" && strings.EqualFold(w.OrganizationEmail, a.Email)
}

// NewWorkspace builds an active workspace for the project.
func NewWorkspace(id string, p *Project, now time.Time) *Workspace {
	return &Workspace{
		ID:                id,
		ProjectID:         p.ID,
		ProjectTitle:      p.Title,
		OrganizationID:    p.OrganizationID,
		OrganizationEmail: p.OrganizationEmail,
		Status:            WorkspaceStatusActive,
		CreatedAt:         now,
	}
}

// WorkspaceMember records that a user joined a workspace.
type WorkspaceMember struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	WorkspaceID string    `gorm:"column:workspace_id;not null" json:"workspaceId"`
	UserID      string    `gorm:"column:user_id;not null" json:"userId"`
	UserName    string    `gorm:"column:user_name" json:"userName"`
	UserEmail   string    `gorm:"column:user_email" json:"userEmail"`
	Role        Role      `gorm:"column:role;type:text" json:"role"`
	JoinedAt    time.Time `gorm:"column:joined_at" json:"joinedAt"`
}

func (WorkspaceMember) TableName() string {
	return "workspace_members"
}
