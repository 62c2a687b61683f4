package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vidzel/vidzel/pkg/db"
	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server/store"
)

// Ensure AccountsStore implements store.AccountsStore
var _ store.AccountsStore = (*AccountsStore)(nil)

// AccountsStore implements store.AccountsStore using GORM
type AccountsStore struct {
	db *gorm.DB
}

// NewAccountsStore creates a new AccountsStore
func NewAccountsStore(db *gorm.DB) *AccountsStore {
	return &AccountsStore{db: db}
}

// CreateAccount inserts the account and optional profile atomically
func (s *AccountsStore) CreateAccount(ctx context.Context, account *model.Account, profile *model.Profile) error {
	if account.ID == "" {
		account.ID = newID()
	}
	account.Email = model.NormalizeEmail(account.Email)
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		if profile == nil {
			return nil
		}
		profile.UserID = account.ID
		if profile.UpdatedAt.IsZero() {
			profile.UpdatedAt = account.CreatedAt
		}
		return tx.Create(profile).Error
	})
	if db.IsUniqueViolation(err) {
		return store.ErrEmailTaken
	}
	return err
}

// FindAccountByEmail looks an account up by its normalized email
func (s *AccountsStore) FindAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := s.db.WithContext(ctx).Where("lower(email) = ?", model.NormalizeEmail(email)).First(&account).Error
	if err != nil {
		return nil, notFound(err, store.ErrAccountNotFound)
	}
	return &account, nil
}

// FindAccountByID looks an account up by id
func (s *AccountsStore) FindAccountByID(ctx context.Context, id string) (*model.Account, error) {
	var account model.Account
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		return nil, notFound(err, store.ErrAccountNotFound)
	}
	return &account, nil
}

// ListAccounts returns all accounts, oldest first
func (s *AccountsStore) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// DeleteAccount removes an account. Dependent rows go with it through
// ON DELETE CASCADE.
func (s *AccountsStore) DeleteAccount(ctx context.Context, email string) error {
	res := s.db.WithContext(ctx).Where("lower(email) = ?", model.NormalizeEmail(email)).Delete(&model.Account{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrAccountNotFound
	}
	return nil
}
