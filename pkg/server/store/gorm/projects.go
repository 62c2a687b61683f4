package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server/store"
)

var _ store.ProjectsStore = (*ProjectsStore)(nil)

// ProjectsStore implements store.ProjectsStore using GORM
type ProjectsStore struct {
	db *gorm.DB
}

// NewProjectsStore creates a new ProjectsStore
func NewProjectsStore(db *gorm.DB) *ProjectsStore {
	return &ProjectsStore{db: db}
}

// CreateProject inserts a project. The list columns are NOT NULL so nil
// slices are stored as empty arrays.
func (s *ProjectsStore) CreateProject(ctx context.Context, project *model.Project) error {
	if project.ID == "" {
		project.ID = newID()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	for _, list := range []*pq.StringArray{
		&project.CauseAreas, &project.CollaborationFormats, &project.Languages,
		&project.ProblemFocus, &project.OutcomeGoals, &project.ResourcesNeeded,
		&project.Activities, &project.Links,
	} {
		if *list == nil {
			*list = pq.StringArray{}
		}
	}
	return s.db.WithContext(ctx).Create(project).Error
}

// GetProject fetches a project by id
func (s *ProjectsStore) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, notFound(err, store.ErrProjectNotFound)
	}
	return &project, nil
}

// ListOrganizationProjects returns an organization's projects, newest first
func (s *ProjectsStore) ListOrganizationProjects(ctx context.Context, org *model.Account) ([]model.Project, error) {
	cond, args := ownedByOrg("", org)
	var projects []model.Project
	if err := s.db.WithContext(ctx).Where(cond, args...).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListExploreProjects returns active projects with the applied flag set
func (s *ProjectsStore) ListExploreProjects(ctx context.Context, applicant *model.Account, limit int) ([]store.ExploreProject, error) {
	q := s.db.WithContext(ctx).
		Table("projects").
		Select(`projects.*, EXISTS (
			SELECT 1 FROM applications a
			WHERE a.project_id = projects.id AND (a.applicant_id = ? OR lower(a.applicant_email) = ?)
		) AS applied`, applicant.ID, model.NormalizeEmail(applicant.Email)).
		Where("projects.status = ?", model.ProjectStatusActive.String()).
		Order("projects.created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var projects []store.ExploreProject
	if err := q.Scan(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListCompletedProjects returns completed projects the account took part in
func (s *ProjectsStore) ListCompletedProjects(ctx context.Context, account *model.Account) ([]model.Project, error) {
	q := s.db.WithContext(ctx).Model(&model.Project{}).
		Where("projects.status = ?", model.ProjectStatusCompleted.String())

	if account.IsOrganization() {
		cond, args := ownedByOrg("projects.", account)
		q = q.Where(cond, args...)
	} else {
		q = q.Joins("JOIN workspaces ON workspaces.project_id = projects.id").
			Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
			Where("workspace_members.user_id = ?", account.ID)
	}

	var projects []model.Project
	if err := q.Order("projects.completed_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// DeleteProject removes the project and every row that belongs to it
func (s *ProjectsStore) DeleteProject(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		workspaces := tx.Model(&model.Workspace{}).Select("id").Where("project_id = ?", id)
		submissions := tx.Model(&model.Submission{}).Select("id").Where("workspace_id IN (?)", workspaces)

		steps := []struct {
			value interface{}
			query string
			arg   interface{}
		}{
			{&model.SubmissionVersion{}, "submission_id IN (?)", submissions},
			{&model.Submission{}, "workspace_id IN (?)", workspaces},
			{&model.Message{}, "workspace_id IN (?)", workspaces},
			{&model.Resource{}, "workspace_id IN (?)", workspaces},
			{&model.Task{}, "workspace_id IN (?)", workspaces},
			{&model.WorkspaceMember{}, "workspace_id IN (?)", workspaces},
			{&model.Workspace{}, "project_id = ?", id},
			{&model.Application{}, "project_id = ?", id},
			{&model.Invitation{}, "project_id = ?", id},
			{&model.Notification{}, "project_id = ?", id},
		}
		for _, step := range steps {
			if err := tx.Where(step.query, step.arg).Delete(step.value).Error; err != nil {
				return err
			}
		}

		res := tx.Where("id = ?", id).Delete(&model.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrProjectNotFound
		}
		return nil
	})
}

// CompleteProject completes the project and archives its workspace
func (s *ProjectsStore) CompleteProject(ctx context.Context, id string, now time.Time) (*model.Project, *model.Workspace, error) {
	var (
		project   model.Project
		workspace *model.Workspace
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&project).Error
		if err != nil {
			return notFound(err, store.ErrProjectNotFound)
		}
		if project.IsCompleted() {
			return store.ErrAlreadyCompleted
		}

		project.Status = model.ProjectStatusCompleted
		project.CompletedAt = &now
		if err := tx.Model(&model.Project{}).Where("id = ?", id).Updates(map[string]interface{}{
			"status":       model.ProjectStatusCompleted,
			"completed_at": now,
		}).Error; err != nil {
			return err
		}

		ws, err := SyncWorkspaceStatus(tx, id, &now)
		if err != nil || ws == nil {
			return err
		}
		workspace = ws

		var members []model.WorkspaceMember
		if err := tx.Where("workspace_id = ?", ws.ID).Find(&members).Error; err != nil {
			return err
		}
		for i := range members {
			if err := createNotification(tx, model.ProjectCompleted(&members[i], ws, now)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &project, workspace, nil
}

// SyncWorkspaceStatus makes the project's workspace follow the project's
// completion: completed at completedAt, or active again when it is nil.
// Projects without a workspace return nil.
func SyncWorkspaceStatus(tx *gorm.DB, projectID string, completedAt *time.Time) (*model.Workspace, error) {
	var ws model.Workspace
	err := tx.Where("project_id = ?", projectID).First(&ws).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ws.Status = model.WorkspaceStatusActive
	if completedAt != nil {
		ws.Status = model.WorkspaceStatusCompleted
	}
	ws.CompletedAt = completedAt
	if err := tx.Model(&model.Workspace{}).Where("id = ?", ws.ID).Updates(map[string]interface{}{
		"status":       ws.Status,
		"completed_at": completedAt,
	}).Error; err != nil {
		return nil, err
	}
	return &ws, nil
}
