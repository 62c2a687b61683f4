package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server/store"
)

var _ store.NotificationsStore = (*NotificationsStore)(nil)

// NotificationsStore implements store.NotificationsStore using GORM
type NotificationsStore struct {
	db *gorm.DB
}

// NewNotificationsStore creates a new NotificationsStore
func NewNotificationsStore(db *gorm.DB) *NotificationsStore {
	return &NotificationsStore{db: db}
}

func (s *NotificationsStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	return createNotification(s.db.WithContext(ctx), n)
}

func (s *NotificationsStore) ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []model.Notification
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *NotificationsStore) CountUnread(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Count(&n).Error
	return n, err
}

// MarkRead only touches notifications owned by userID
func (s *NotificationsStore) MarkRead(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationsStore) MarkAllRead(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
