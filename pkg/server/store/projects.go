package store

import (
	"context"
	"time"

	"github.com/vidzel/vidzel/pkg/model"
)

// ExploreProject is a project as listed to a prospective applicant.
type ExploreProject struct {
	model.Project
	Applied bool `gorm:"column:applied" json:"applied"`
}

// ProjectsStore abstracts project storage operations
type ProjectsStore interface {
	CreateProject(ctx context.Context, project *model.Project) error

	// GetProject returns ErrProjectNotFound for unknown ids
	GetProject(ctx context.Context, id string) (*model.Project, error)

	// ListOrganizationProjects returns the organization's projects, newest first
	ListOrganizationProjects(ctx context.Context, org *model.Account) ([]model.Project, error)

	// ListExploreProjects returns every active project, flagging the ones
	// the account already applied to.
	ListExploreProjects(ctx context.Context, applicant *model.Account, limit int) ([]ExploreProject, error)

	// ListCompletedProjects returns completed projects the account owns or
	// is a member of.
	ListCompletedProjects(ctx context.Context, account *model.Account) ([]model.Project, error)

	// DeleteProject removes the project and everything hanging off it in a
	// single transaction.
	DeleteProject(ctx context.Context, id string) error

	// CompleteProject marks the project and its workspace completed and
	// notifies every member, atomically. Returns ErrAlreadyCompleted when
	// the project was already completed. The returned workspace is nil when
	// the project never had one.
	CompleteProject(ctx context.Context, id string, now time.Time) (*model.Project, *model.Workspace, error)
}
