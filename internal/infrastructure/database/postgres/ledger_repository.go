package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"isp-ledger/internal/domain/ledger"
	"isp-ledger/internal/infrastructure/monitoring"
	"isp-ledger/internal/pkg/apperrors"
)

type LedgerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ ledger.LedgerRepository = (*LedgerRepository)(nil)

func NewLedgerRepository(db DBPool, logger *slog.Logger) *LedgerRepository {
	if db == nil {
		panic("DBPool cannot be nil for LedgerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewLedgerRepository, using default stderr handler")
	}
	return &LedgerRepository{
		db:     db,
		logger: logger.With("component", "LedgerRepository"),
	}
}

// RecordPayment decrements the customer's pending balance and inserts the
// history row in a single transaction. A payment must never exist without
// its balance adjustment, and vice versa.
func (r *LedgerRepository) RecordPayment(ctx context.Context, accountID int64, amountPaid float64, paymentDate time.Time) (*ledger.Payment, error) {
	logCtx := r.logger.With(slog.Int64("accountID", accountID))
	logCtx.InfoContext(ctx, "Attempting to record payment", slog.Float64("amount", amountPaid))
	start := time.Now()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logCtx.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", rbErr))
		}
	}()

	balanceQuery := `
        UPDATE customers
        SET pending_balance = pending_balance - $1,
            updated_at = NOW()
        WHERE id = $2`

	cmdTag, err := tx.Exec(ctx, balanceQuery, amountPaid, accountID)
	if err != nil {
		monitoring.RecordDBQuery("record_payment", "error", time.Since(start))
		logCtx.ErrorContext(ctx, "Failed to decrement pending balance", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to decrement pending balance: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "Payment rejected: account does not exist")
		return nil, ledger.ErrAccountNotFound
	}

	insertQuery := `
        INSERT INTO payment_history (customer_id, amount_paid, payment_date, created_at)
        VALUES ($1, $2, $3, NOW())
        RETURNING id, created_at`

	payment := &ledger.Payment{
		AccountID:   accountID,
		AmountPaid:  amountPaid,
		PaymentDate: paymentDate,
	}
	err = tx.QueryRow(ctx, insertQuery, accountID, amountPaid, paymentDate).Scan(
		&payment.PaymentID,
		&payment.CreatedAt,
	)
	if err != nil {
		monitoring.RecordDBQuery("record_payment", "error", time.Since(start))
		logCtx.ErrorContext(ctx, "Failed to insert payment history row", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to insert payment: %w", apperrors.ErrDatabase, err)
	}

	if err := tx.Commit(ctx); err != nil {
		monitoring.RecordDBQuery("record_payment", "error", time.Since(start))
		logCtx.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("record_payment", "ok", time.Since(start))
	logCtx.InfoContext(ctx, "Payment recorded successfully", slog.Int64("paymentID", payment.PaymentID))
	return payment, nil
}

func (r *LedgerRepository) FindByAccountID(ctx context.Context, accountID int64) ([]*ledger.Payment, error) {
	r.logger.InfoContext(ctx, "Attempting to find payment history", slog.Int64("accountID", accountID))
	start := time.Now()

	query := `
        SELECT id, customer_id, amount_paid, payment_date, created_at
        FROM payment_history
        WHERE customer_id = $1
        ORDER BY payment_date DESC, id DESC`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		monitoring.RecordDBQuery("list_payments", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to query payment history", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query payment history: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	payments := make([]*ledger.Payment, 0)
	for rows.Next() {
		var p ledger.Payment
		err := rows.Scan(
			&p.PaymentID,
			&p.AccountID,
			&p.AmountPaid,
			&p.PaymentDate,
			&p.CreatedAt,
		)
		if err != nil {
			monitoring.RecordDBQuery("list_payments", "error", time.Since(start))
			r.logger.ErrorContext(ctx, "Failed to scan payment row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan payment row: %w", apperrors.ErrDatabase, err)
		}
		payments = append(payments, &p)
	}

	if err = rows.Err(); err != nil {
		monitoring.RecordDBQuery("list_payments", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Error iterating payment rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating payment rows: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("list_payments", "ok", time.Since(start))
	r.logger.InfoContext(ctx, "Finished finding payment history", slog.Int("count", len(payments)))
	return payments, nil
}
