package ledger

import (
	"context"
	"errors"
	"time"
)

var ErrAccountNotFound = errors.New("account not found for payment")

type LedgerRepository interface {
	// RecordPayment decrements the account's pending balance and appends
	// the history row inside one transaction; both happen or neither.
	// Returns ErrAccountNotFound when the account does not exist.
	RecordPayment(ctx context.Context, accountID int64, amountPaid float64, paymentDate time.Time) (*Payment, error)

	// FindByAccountID returns payments ordered by payment date descending,
	// ties broken most-recently-inserted first. An unknown account yields
	// an empty slice, not an error.
	FindByAccountID(ctx context.Context, accountID int64) ([]*Payment, error)
}
