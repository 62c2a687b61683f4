package gorm

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vidzel/vidzel/pkg/db"
	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server/store"
)

var _ store.ApplicationsStore = (*ApplicationsStore)(nil)

// ApplicationsStore implements store.ApplicationsStore using GORM
type ApplicationsStore struct {
	db *gorm.DB
}

// NewApplicationsStore creates a new ApplicationsStore
func NewApplicationsStore(db *gorm.DB) *ApplicationsStore {
	return &ApplicationsStore{db: db}
}

// CreateApplication inserts a pending application and notifies the owner
func (s *ApplicationsStore) CreateApplication(ctx context.Context, app *model.Application, notice *model.Notification) error {
	if app.ID == "" {
		app.ID = newID()
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now().UTC()
	}
	app.Status = model.ApplicationStatusPending
	app.ApplicantEmail = model.NormalizeEmail(app.ApplicantEmail)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.Application{}).
			Where("project_id = ? AND (applicant_id = ? OR lower(applicant_email) = ?)",
				app.ProjectID, app.ApplicantID, app.ApplicantEmail).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return store.ErrAlreadyApplied
		}
		if err := tx.Create(app).Error; err != nil {
			return err
		}
		return createNotification(tx, notice)
	})
	if db.IsUniqueViolation(err) {
		return store.ErrAlreadyApplied
	}
	return err
}

func (s *ApplicationsStore) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		return nil, notFound(err, store.ErrApplicationNotFound)
	}
	return &app, nil
}

// ListProjectApplications returns a project's applications, newest first
func (s *ApplicationsStore) ListProjectApplications(ctx context.Context, projectID string, filter store.ApplicationFilter) ([]model.Application, error) {
	q := s.db.WithContext(ctx).Where("project_id = ?", projectID)
	if len(filter.Roles) > 0 {
		q = q.Where("applicant_role IN ?", roleStrings(filter.Roles))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			statuses[i] = st.String()
		}
		q = q.Where("status IN ?", statuses)
	}
	if filter.Query != "" {
		like := likePattern(filter.Query)
		q = q.Where("(applicant_name ILIKE ? OR applicant_email ILIKE ?)", like, like)
	}

	var apps []model.Application
	if err := q.Order("applied_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListOrganizationApplications returns every application to the org's
// projects. Applicants are matched by id first and email second.
func (s *ApplicationsStore) ListOrganizationApplications(ctx context.Context, org *model.Account) ([]store.ApplicationWithApplicant, error) {
	cond, args := ownedByOrg("projects.", org)
	var apps []model.Application
	err := s.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = applications.project_id").
		Where(cond, args...).
		Order("applications.applied_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return []store.ApplicationWithApplicant{}, nil
	}

	ids := make([]string, 0, len(apps))
	emails := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.ApplicantID)
		emails = append(emails, model.NormalizeEmail(a.ApplicantEmail))
	}
	var accounts []model.Account
	if err := s.db.WithContext(ctx).Where("id IN ? OR lower(email) IN ?", ids, emails).Find(&accounts).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Account, len(accounts))
	byEmail := make(map[string]*model.Account, len(accounts))
	for i := range accounts {
		byID[accounts[i].ID] = &accounts[i]
		byEmail[accounts[i].Email] = &accounts[i]
	}

	out := make([]store.ApplicationWithApplicant, len(apps))
	for i, a := range apps {
		out[i].Application = a
		if acct, ok := byID[a.ApplicantID]; ok {
			out[i].Applicant = acct
		} else {
			out[i].Applicant = byEmail[model.NormalizeEmail(a.ApplicantEmail)]
		}
	}
	return out, nil
}

func (s *ApplicationsStore) ListApplicantApplications(ctx context.Context, applicantID string) ([]model.Application, error) {
	var apps []model.Application
	if err := s.db.WithContext(ctx).Where("applicant_id = ?", applicantID).Order("applied_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// DecideApplication accepts or rejects a pending application
func (s *ApplicationsStore) DecideApplication(ctx context.Context, id string, status model.ApplicationStatus, now time.Time) (*model.Application, *model.Workspace, error) {
	if status != model.ApplicationStatusAccepted && status != model.ApplicationStatusRejected {
		return nil, nil, fmt.Errorf("invalid application decision: %s", status)
	}

	var (
		app       model.Application
		workspace *model.Workspace
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&app).Error; err != nil {
			return notFound(err, store.ErrApplicationNotFound)
		}

		var project model.Project
		if status == model.ApplicationStatusAccepted {
			// locked so completion cannot interleave with the new membership
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", app.ProjectID).First(&project).Error
			if err != nil {
				return notFound(err, store.ErrProjectNotFound)
			}
			if project.Status == model.ProjectStatusCompleted {
				return store.ErrAlreadyCompleted
			}
		}

		res := tx.Model(&model.Application{}).
			Where("id = ? AND status = ?", id, model.ApplicationStatusPending.String()).
			Updates(map[string]interface{}{"status": status, "decided_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrNotPending
		}
		app.Status = status
		app.DecidedAt = &now

		if status == model.ApplicationStatusAccepted {
			ws, err := ensureWorkspace(tx, &project, now)
			if err != nil {
				return err
			}
			workspace = ws
			if _, err := ensureMember(tx, &model.WorkspaceMember{
				WorkspaceID: ws.ID,
				UserID:      app.ApplicantID,
				UserName:    app.ApplicantName,
				UserEmail:   app.ApplicantEmail,
				Role:        app.ApplicantRole,
				JoinedAt:    now,
			}); err != nil {
				return err
			}
		}

		return createNotification(tx, model.ApplicationDecided(&app, workspace, now))
	})
	if err != nil {
		return nil, nil, err
	}
	return &app, workspace, nil
}
