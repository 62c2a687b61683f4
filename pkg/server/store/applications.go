package store

import (
	"context"
	"time"

	"github.com/vidzel/vidzel/pkg/model"
)

// ApplicationFilter narrows an owner's view of a project's applications
type ApplicationFilter struct {
	Roles    []model.Role
	Statuses []model.ApplicationStatus
	// Query is matched case-insensitively against applicant name and email
	Query string
}

// ApplicationWithApplicant pairs an application with the applicant's
// current account, when it still exists.
type ApplicationWithApplicant struct {
	model.Application
	Applicant *model.Account `gorm:"-" json:"applicant,omitempty"`
}

// ApplicationsStore abstracts application storage operations
type ApplicationsStore interface {
	// CreateApplication inserts a pending application together with the
	// owner's notification. Returns ErrAlreadyApplied when the applicant (by
	// id or email) already applied.
	CreateApplication(ctx context.Context, app *model.Application, notice *model.Notification) error

	GetApplication(ctx context.Context, id string) (*model.Application, error)

	ListProjectApplications(ctx context.Context, projectID string, filter ApplicationFilter) ([]model.Application, error)

	// ListOrganizationApplications returns applications across every project
	// the organization owns, with the applicant resolved by id or email.
	ListOrganizationApplications(ctx context.Context, org *model.Account) ([]ApplicationWithApplicant, error)

	ListApplicantApplications(ctx context.Context, applicantID string) ([]model.Application, error)

	// DecideApplication moves a pending application to accepted or rejected.
	// Accepting provisions the workspace and membership. The applicant is
	// notified either way. All writes share one transaction. Returns
	// ErrNotPending if the application was already decided.
	DecideApplication(ctx context.Context, id string, status model.ApplicationStatus, now time.Time) (*model.Application, *model.Workspace, error)
}
