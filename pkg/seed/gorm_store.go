package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vidzel/vidzel/pkg/model"
	gormstore "github.com/vidzel/vidzel/pkg/server/store/gorm"
)

// Ensure GormStore implements Store
var _ Store = (*GormStore)(nil)

// GormStore implements Store using GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Transaction wraps operations in a database transaction.
func (s *GormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) FindAccount(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := s.db.WithContext(ctx).Where("lower(email) = ?", model.NormalizeEmail(email)).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", email, err)
	}
	return &account, nil
}

func (s *GormStore) CreateAccount(ctx context.Context, account *model.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account %s: %w", account.Email, err)
	}
	return nil
}

func (s *GormStore) UpdateAccount(ctx context.Context, account *model.Account) error {
	err := s.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"name":          account.Name,
			"role":          account.Role,
			"password_hash": account.PasswordHash,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.Email, err)
	}
	return nil
}

// SaveProfile upserts on user_id. The resume columns are left alone so a
// reseed does not drop an uploaded resume.
func (s *GormStore) SaveProfile(ctx context.Context, profile *model.Profile) error {
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now().UTC()
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "location", "bio", "skills", "availability",
			"education", "experience", "updated_at",
		}),
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to save profile for %s: %w", profile.UserID, err)
	}
	return nil
}

func (s *GormStore) FindProject(ctx context.Context, organizationID, title string) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND title = ?", organizationID, title).
		Order("created_at ASC").
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find project %q: %w", title, err)
	}
	return &project, nil
}

func (s *GormStore) CreateProject(ctx context.Context, project *model.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project %q: %w", project.Title, err)
	}
	return nil
}

// UpdateProject rewrites every column except id and created_at
func (s *GormStore) UpdateProject(ctx context.Context, project *model.Project) error {
	err := s.db.WithContext(ctx).Model(project).
		Select("*").Omit("id", "created_at").
		Updates(project).Error
	if err != nil {
		return fmt.Errorf("failed to update project %q: %w", project.Title, err)
	}
	return nil
}

// SyncWorkspace applies the same workspace step as completing a project
// through the API
func (s *GormStore) SyncWorkspace(ctx context.Context, project *model.Project) error {
	if _, err := gormstore.SyncWorkspaceStatus(s.db.WithContext(ctx), project.ID, project.CompletedAt); err != nil {
		return fmt.Errorf("failed to update workspace of project %q: %w", project.Title, err)
	}
	return nil
}
