package ledger

import "time"

// Payment is one row of the append-only payment history. Rows are immutable
// once recorded; they disappear only when the owning account is deleted.
type Payment struct {
	PaymentID   int64
	AccountID   int64
	AmountPaid  float64
	PaymentDate time.Time
	CreatedAt   time.Time
}
