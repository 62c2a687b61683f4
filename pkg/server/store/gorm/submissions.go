package gorm

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vidzel/vidzel/pkg/db"
	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server/store"
)

var _ store.SubmissionsStore = (*SubmissionsStore)(nil)

// SubmissionsStore implements store.SubmissionsStore using GORM
type SubmissionsStore struct {
	db *gorm.DB
}

// NewSubmissionsStore creates a new SubmissionsStore
func NewSubmissionsStore(db *gorm.DB) *SubmissionsStore {
	return &SubmissionsStore{db: db}
}

func orderedVersions(db *gorm.DB) *gorm.DB {
	return db.Order("version ASC")
}

// SubmitVersion appends the next version to the user's submission. Two
// submits racing on the same (workspace, user) or version number collide on
// a unique constraint; the loser gets ErrSubmissionConflict.
func (s *SubmissionsStore) SubmitVersion(ctx context.Context, workspaceID string, user *model.Account, v store.NewVersion, now time.Time) (*model.Submission, *model.SubmissionVersion, error) {
	var (
		sub     model.Submission
		version model.SubmissionVersion
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("workspace_id = ? AND user_id = ?", workspaceID, user.ID).First(&sub).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			sub = model.Submission{
				ID:          newID(),
				WorkspaceID: workspaceID,
				UserID:      user.ID,
				UserName:    user.Name,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := tx.Create(&sub).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}

		var latest int
		row := tx.Model(&model.SubmissionVersion{}).
			Select("COALESCE(MAX(version), 0)").
			Where("submission_id = ?", sub.ID).
			Row()
		if err := row.Scan(&latest); err != nil {
			return err
		}

		version = model.SubmissionVersion{
			ID:           newID(),
			SubmissionID: sub.ID,
			Version:      latest + 1,
			Title:        v.Title,
			Link:         v.Link,
			Description:  v.Description,
			SubmittedAt:  now,
		}
		if err := tx.Create(&version).Error; err != nil {
			return err
		}

		sub.UpdatedAt = now
		if err := tx.Model(&model.Submission{}).Where("id = ?", sub.ID).Update("updated_at", now).Error; err != nil {
			return err
		}
		return tx.Where("submission_id = ?", sub.ID).Order("version ASC").Find(&sub.Versions).Error
	})
	if db.IsUniqueViolation(err) {
		return nil, nil, store.ErrSubmissionConflict
	}
	if err != nil {
		return nil, nil, err
	}
	return &sub, &version, nil
}

// ListSubmissions returns submissions with versions in ascending order
func (s *SubmissionsStore) ListSubmissions(ctx context.Context, workspaceID, userID string) ([]model.Submission, error) {
	q := s.db.WithContext(ctx).Preload("Versions", orderedVersions).Where("workspace_id = ?", workspaceID)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var subs []model.Submission
	if err := q.Order("created_at ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *SubmissionsStore) GetSubmission(ctx context.Context, workspaceID, submissionID string) (*model.Submission, error) {
	var sub model.Submission
	err := s.db.WithContext(ctx).
		Preload("Versions", orderedVersions).
		Where("id = ? AND workspace_id = ?", submissionID, workspaceID).
		First(&sub).Error
	if err != nil {
		return nil, notFound(err, store.ErrSubmissionNotFound)
	}
	return &sub, nil
}

// AddFeedback records the organization's review of one version
func (s *SubmissionsStore) AddFeedback(ctx context.Context, submissionID string, version int, fb store.Feedback, now time.Time) (*model.SubmissionVersion, error) {
	var v model.SubmissionVersion
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.SubmissionVersion{}).
			Where("submission_id = ? AND version = ?", submissionID, version).
			Updates(map[string]interface{}{
				"feedback_comment": fb.Comment,
				"feedback_status":  fb.Status,
				"reviewed_at":      now,
				"reviewed_by":      fb.ReviewedBy,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrSubmissionNotFound
		}
		return tx.Where("submission_id = ? AND version = ?", submissionID, version).First(&v).Error
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}
