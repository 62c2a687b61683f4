package seed

import (
	"context"
	"errors"

	"github.com/vidzel/vidzel/pkg/model"
)

// ErrNotFound is returned by Store lookups that match nothing
var ErrNotFound = errors.New("not found")

// Store abstracts the writes a seed load performs, so the loader can run
// against a database or an in-memory fake.
type Store interface {
	// Transaction runs fn against a transactional Store. Returning an
	// error rolls everything back.
	Transaction(ctx context.Context, fn func(Store) error) error

	// FindAccount looks an account up by normalized email
	FindAccount(ctx context.Context, email string) (*model.Account, error)
	CreateAccount(ctx context.Context, account *model.Account) error
	// UpdateAccount rewrites name, role and password hash
	UpdateAccount(ctx context.Context, account *model.Account) error
	SaveProfile(ctx context.Context, profile *model.Profile) error

	// FindProject looks a project up by owning organization and exact title
	FindProject(ctx context.Context, organizationID, title string) (*model.Project, error)
	CreateProject(ctx context.Context, project *model.Project) error
	UpdateProject(ctx context.Context, project *model.Project) error
	// SyncWorkspace moves the project's workspace, if it has one, to match
	// the project's completion
	SyncWorkspace(ctx context.Context, project *model.Project) error
}
