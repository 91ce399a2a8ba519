package account

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("account not found")

	ErrUpdateConflict = errors.New("update conflict detected")
)

type AccountRepository interface {
	// Save inserts when AccountID is zero and performs a full-record
	// overwrite otherwise. An update that affects zero rows returns
	// ErrNotFound.
	Save(ctx context.Context, acct *Account) error

	FindByID(ctx context.Context, accountID int64) (*Account, error)

	FindAll(ctx context.Context) ([]*Account, error)

	// Delete removes the account and all of its payment history in one
	// transaction. Deleting a nonexistent id is not an error.
	Delete(ctx context.Context, accountID int64) error
}
