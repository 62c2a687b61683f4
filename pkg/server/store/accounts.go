package store

import (
	"context"

	"github.com/vidzel/vidzel/pkg/model"
)

// AccountsStore abstracts account storage operations
type AccountsStore interface {
	// CreateAccount inserts the account and, when profile is non-nil, its
	// profile in the same transaction. Returns ErrEmailTaken on duplicates.
	CreateAccount(ctx context.Context, account *model.Account, profile *model.Profile) error

	// FindAccountByEmail looks up an account by normalized email.
	// Returns ErrAccountNotFound if there is none.
	FindAccountByEmail(ctx context.Context, email string) (*model.Account, error)

	// FindAccountByID looks up an account by id.
	FindAccountByID(ctx context.Context, id string) (*model.Account, error)

	// ListAccounts returns every account ordered by creation time
	ListAccounts(ctx context.Context) ([]model.Account, error)

	// DeleteAccount deletes an account and everything that references it
	DeleteAccount(ctx context.Context, email string) error
}
