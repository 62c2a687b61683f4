package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/vidzel/vidzel/pkg/authenticator/authn"
	"github.com/vidzel/vidzel/pkg/model"
)

var errDryRunRollback = errors.New("dry run rollback")

// Result summarizes what a load changed.
type Result struct {
	// CreatedAccounts holds the credentials of new accounts by email. It is
	// the only place a generated password is ever shown.
	CreatedAccounts map[string]Credentials `json:"created_accounts"`
	UpdatedAccounts []string               `json:"updated_accounts"`
	CreatedProjects []string               `json:"created_projects"`
	UpdatedProjects []string               `json:"updated_projects"`
	DryRun          bool                   `json:"dry_run,omitempty"`
}

// Credentials of a newly created account.
type Credentials struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Loader applies seed documents to a Store.
type Loader struct {
	store  Store
	logger *zap.Logger
	dryRun bool
	now    func() time.Time
}

// NewLoader creates a new seed loader.
func NewLoader(store Store) *Loader {
	return &Loader{
		store:  store,
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithLogger sets the logger.
func (l *Loader) WithLogger(logger *zap.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// WithDryRun sets whether to validate only without applying changes.
func (l *Loader) WithDryRun(dryRun bool) *Loader {
	l.dryRun = dryRun
	return l
}

// LoadFile parses and loads the seed document at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return l.LoadFromReader(ctx, f)
}

// LoadFromReader parses and loads a seed document from an io.Reader.
func (l *Loader) LoadFromReader(ctx context.Context, r io.Reader) (*Result, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, doc)
}

// Load applies a parsed document in one transaction. Accounts go first so
// projects can resolve organizations declared in the same document.
func (l *Loader) Load(ctx context.Context, doc *Document) (*Result, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var result *Result
	err := l.store.Transaction(ctx, func(tx Store) error {
		result = &Result{CreatedAccounts: map[string]Credentials{}, DryRun: l.dryRun}
		for _, a := range doc.Accounts {
			if err := l.loadAccount(ctx, tx, a, result); err != nil {
				return err
			}
		}
		for _, p := range doc.Projects {
			if err := l.loadProject(ctx, tx, p, result); err != nil {
				return err
			}
		}
		if l.dryRun {
			return errDryRunRollback
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDryRunRollback) {
		return nil, err
	}

	l.logger.Info("seed loaded",
		zap.Bool("dry_run", l.dryRun),
		zap.Int("accounts_created", len(result.CreatedAccounts)),
		zap.Int("accounts_updated", len(result.UpdatedAccounts)),
		zap.Int("projects_created", len(result.CreatedProjects)),
		zap.Int("projects_updated", len(result.UpdatedProjects)),
	)
	return result, nil
}

func (l *Loader) loadAccount(ctx context.Context, tx Store, a Account, result *Result) error {
	email := model.NormalizeEmail(a.Email)
	role, err := parseRole(a.Role)
	if err != nil {
		return fmt.Errorf("account %s: %w", email, err)
	}

	existing, err := tx.FindAccount(ctx, email)
	switch {
	case errors.Is(err, ErrNotFound):
		password := a.Password
		if password == "" {
			if password, err = authn.GeneratePassword(); err != nil {
				return err
			}
		}
		hash, err := authn.HashPassword(password)
		if err != nil {
			return err
		}
		existing = &model.Account{
			Name:         strings.TrimSpace(a.Name),
			Email:        email,
			PasswordHash: hash,
			Role:         role,
			CreatedAt:    l.now(),
		}
		if err := tx.CreateAccount(ctx, existing); err != nil {
			return err
		}
		result.CreatedAccounts[email] = Credentials{ID: existing.ID, Email: email, Password: password}
		l.logger.Debug("created account", zap.String("email", email), zap.String("role", role.String()))
	case err != nil:
		return err
	default:
		existing.Name = strings.TrimSpace(a.Name)
		existing.Role = role
		if a.Password != "" {
			hash, err := authn.HashPassword(a.Password)
			if err != nil {
				return err
			}
			existing.PasswordHash = hash
		}
		if err := tx.UpdateAccount(ctx, existing); err != nil {
			return err
		}
		result.UpdatedAccounts = append(result.UpdatedAccounts, email)
		l.logger.Debug("updated account", zap.String("email", email))
	}

	// organizations have no profile
	if existing.IsOrganization() {
		return nil
	}
	profile := &model.Profile{UserID: existing.ID, FullName: existing.Name, UpdatedAt: l.now()}
	if p := a.Profile; p != nil {
		profile.Location = p.Location
		profile.Bio = p.Bio
		profile.Skills = p.Skills
		profile.Availability = p.Availability
		profile.Education = p.Education
		profile.Experience = p.Experience
	}
	return tx.SaveProfile(ctx, profile)
}

func (l *Loader) loadProject(ctx context.Context, tx Store, p Project, result *Result) error {
	title := strings.TrimSpace(p.Title)
	orgEmail := model.NormalizeEmail(p.Organization)

	org, err := tx.FindAccount(ctx, orgEmail)
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("project %q: organization %s does not exist", title, orgEmail)
	}
	if err != nil {
		return err
	}
	if !org.IsOrganization() {
		return fmt.Errorf("project %q: %s is not an organization", title, orgEmail)
	}

	status, err := parseProjectStatus(p.Status)
	if err != nil {
		return fmt.Errorf("project %q: %w", title, err)
	}

	project, err := tx.FindProject(ctx, org.ID, title)
	created := errors.Is(err, ErrNotFound)
	if err != nil && !created {
		return err
	}
	if created {
		project = &model.Project{OrganizationID: org.ID, Title: title, CreatedAt: l.now()}
	}

	project.OrganizationName = org.Name
	project.OrganizationEmail = org.Email
	project.Description = p.Description
	project.Tasks = p.Tasks
	project.CauseAreas = stringArray(p.CauseAreas)
	project.CollaborationFormats = stringArray(p.CollaborationFormats)
	project.Languages = stringArray(p.Languages)
	project.ProblemFocus = stringArray(p.ProblemFocus)
	project.OutcomeGoals = stringArray(p.OutcomeGoals)
	project.ResourcesNeeded = stringArray(p.ResourcesNeeded)
	project.Activities = stringArray(p.Activities)
	project.Links = stringArray(p.Links)

	wasCompleted := project.IsCompleted()
	switch {
	case status == model.ProjectStatusCompleted && project.CompletedAt == nil:
		now := l.now()
		project.CompletedAt = &now
	case status != model.ProjectStatusCompleted:
		project.CompletedAt = nil
	}
	project.Status = status

	if created {
		if err := tx.CreateProject(ctx, project); err != nil {
			return err
		}
		result.CreatedProjects = append(result.CreatedProjects, project.ID)
		l.logger.Debug("created project", zap.String("title", title), zap.String("organization", orgEmail))
		return nil
	}
	if err := tx.UpdateProject(ctx, project); err != nil {
		return err
	}
	if project.IsCompleted() != wasCompleted {
		if err := tx.SyncWorkspace(ctx, project); err != nil {
			return err
		}
	}
	result.UpdatedProjects = append(result.UpdatedProjects, project.ID)
	return nil
}

// stringArray trims entries, drops blanks and never returns nil
func stringArray(in []string) pq.StringArray {
	out := pq.StringArray{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
