package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vidzel/vidzel/pkg/db"
	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server/store"
)

var _ store.InvitationsStore = (*InvitationsStore)(nil)

// InvitationsStore implements store.InvitationsStore using GORM
type InvitationsStore struct {
	db *gorm.DB
}

// NewInvitationsStore creates a new InvitationsStore
func NewInvitationsStore(db *gorm.DB) *InvitationsStore {
	return &InvitationsStore{db: db}
}

// CreateInvitation inserts a pending invitation and the invitee's notification
func (s *InvitationsStore) CreateInvitation(ctx context.Context, inv *model.Invitation, notice *model.Notification) error {
	if inv.ID == "" {
		inv.ID = newID()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	inv.Status = model.InvitationStatusPending

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		return createNotification(tx, notice)
	})
	if db.IsUniqueViolation(err) {
		return store.ErrAlreadyInvited
	}
	return err
}

func (s *InvitationsStore) GetInvitation(ctx context.Context, id string) (*model.Invitation, error) {
	var inv model.Invitation
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error; err != nil {
		return nil, notFound(err, store.ErrInvitationNotFound)
	}
	return &inv, nil
}

func (s *InvitationsStore) ListReceivedInvitations(ctx context.Context, userID string) ([]model.Invitation, error) {
	var invs []model.Invitation
	if err := s.db.WithContext(ctx).Where("invited_user_id = ?", userID).Order("created_at DESC").Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

func (s *InvitationsStore) ListSentInvitations(ctx context.Context, org *model.Account) ([]model.Invitation, error) {
	var invs []model.Invitation
	err := s.db.WithContext(ctx).
		Where("invited_by_org_id = ? OR lower(invited_by_org_email) = ?", org.ID, model.NormalizeEmail(org.Email)).
		Order("created_at DESC").
		Find(&invs).Error
	if err != nil {
		return nil, err
	}
	return invs, nil
}

// AcceptInvitation answers a pending invitation and joins the workspace
func (s *InvitationsStore) AcceptInvitation(ctx context.Context, id string, invitee *model.Account, now time.Time) (*model.Workspace, error) {
	var workspace *model.Workspace
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv model.Invitation
		if err := tx.Where("id = ?", id).First(&inv).Error; err != nil {
			return notFound(err, store.ErrInvitationNotFound)
		}

		var project model.Project
		// locked so completion cannot interleave with the new membership
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", inv.ProjectID).First(&project).Error; err != nil {
			return notFound(err, store.ErrProjectNotFound)
		}
		if project.Status == model.ProjectStatusCompleted {
			return store.ErrAlreadyCompleted
		}
		if err := answer(tx, id, model.InvitationStatusAccepted, now); err != nil {
			return err
		}
		ws, err := ensureWorkspace(tx, &project, now)
		if err != nil {
			return err
		}
		workspace = ws

		name := invitee.Name
		if name == "" {
			name = inv.InvitedUserName
		}
		joined, err := ensureMember(tx, &model.WorkspaceMember{
			WorkspaceID: ws.ID,
			UserID:      inv.InvitedUserID,
			UserName:    name,
			UserEmail:   invitee.Email,
			Role:        inv.InvitedUserRole,
			JoinedAt:    now,
		})
		if err != nil || !joined {
			return err
		}
		return createNotification(tx, model.InvitationAccepted(inv.InvitedUserID, &project, ws, now))
	})
	if err != nil {
		return nil, err
	}
	return workspace, nil
}

// DeclineInvitation answers a pending invitation with declined
func (s *InvitationsStore) DeclineInvitation(ctx context.Context, id string, now time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv model.Invitation
		if err := tx.Where("id = ?", id).First(&inv).Error; err != nil {
			return notFound(err, store.ErrInvitationNotFound)
		}
		return answer(tx, id, model.InvitationStatusDeclined, now)
	})
}

// answer moves a pending invitation to status. Zero updated rows means it
// was answered concurrently.
func answer(tx *gorm.DB, id string, status model.InvitationStatus, now time.Time) error {
	res := tx.Model(&model.Invitation{}).
		Where("id = ? AND status = ?", id, model.InvitationStatusPending.String()).
		Updates(map[string]interface{}{"status": status, "responded_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotPending
	}
	return nil
}
