package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server/store"
)

var _ store.ProfilesStore = (*ProfilesStore)(nil)

// ProfilesStore implements store.ProfilesStore using GORM
type ProfilesStore struct {
	db *gorm.DB
}

// NewProfilesStore creates a new ProfilesStore
func NewProfilesStore(db *gorm.DB) *ProfilesStore {
	return &ProfilesStore{db: db}
}

func (s *ProfilesStore) joined(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("profiles").
		Select("profiles.*, accounts.name, accounts.email, accounts.role").
		Joins("JOIN accounts ON accounts.id = profiles.user_id")
}

// GetProfile returns the profile and account of a user
func (s *ProfilesStore) GetProfile(ctx context.Context, userID string) (*model.ProfileWithAccount, error) {
	var p model.ProfileWithAccount
	if err := s.joined(ctx).Where("profiles.user_id = ?", userID).Take(&p).Error; err != nil {
		return nil, notFound(err, store.ErrProfileNotFound)
	}
	return &p, nil
}

// SaveProfile upserts the profile and stamps updated_at
func (s *ProfilesStore) SaveProfile(ctx context.Context, profile *model.Profile) error {
	profile.UpdatedAt = time.Now().UTC()
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(profile).Error
}

// ListProfiles returns the profiles of students, volunteers and mentors
func (s *ProfilesStore) ListProfiles(ctx context.Context, filter store.ProfileFilter) ([]model.ProfileWithAccount, error) {
	q := s.joined(ctx).Where("accounts.role <> ?", model.RoleOrganization.String())
	if len(filter.Roles) > 0 {
		q = q.Where("accounts.role IN ?", roleStrings(filter.Roles))
	}
	if filter.Query != "" {
		like := likePattern(filter.Query)
		q = q.Where("(accounts.name ILIKE ? OR profiles.full_name ILIKE ? OR profiles.skills ILIKE ? OR accounts.role ILIKE ?)",
			like, like, like, like)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var profiles []model.ProfileWithAccount
	if err := q.Order("accounts.name ASC").Scan(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
