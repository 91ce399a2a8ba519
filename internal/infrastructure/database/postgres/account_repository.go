package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"

	"isp-ledger/internal/domain/account"
	"isp-ledger/internal/infrastructure/monitoring"
	"isp-ledger/internal/pkg/apperrors"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

type AccountRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ account.AccountRepository = (*AccountRepository)(nil)

func NewAccountRepository(db DBPool, logger *slog.Logger) *AccountRepository {
	if db == nil {
		panic("DBPool cannot be nil for AccountRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAccountRepository, using default stderr handler")
	}
	return &AccountRepository{
		db:     db,
		logger: logger.With("component", "AccountRepository"),
	}
}

func (r *AccountRepository) Save(ctx context.Context, acct *account.Account) error {
	if acct == nil {
		return fmt.Errorf("%w: account cannot be nil", apperrors.ErrInvalidArgument)
	}

	if acct.AccountID == 0 {
		return r.createAccount(ctx, acct)
	}
	return r.updateAccount(ctx, acct)
}

func (r *AccountRepository) createAccount(ctx context.Context, acct *account.Account) error {
	r.logger.InfoContext(ctx, "Attempting to insert new account", slog.String("name", acct.Name))
	start := time.Now()

	query := `
        INSERT INTO customers (name, mobile, address, plan_details, monthly_cost, renewal_date, pending_balance, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		acct.Name,
		acct.Mobile,
		acct.Address,
		acct.PlanDetails,
		acct.MonthlyCost,
		acct.RenewalDate,
		acct.PendingBalance,
	).Scan(
		&acct.AccountID,
		&acct.CreatedAt,
		&acct.UpdatedAt,
	)

	if err != nil {
		monitoring.RecordDBQuery("insert_account", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to insert account", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert account: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("insert_account", "ok", time.Since(start))
	r.logger.InfoContext(ctx, "Account inserted successfully", slog.Int64("accountID", acct.AccountID))
	return nil
}

func (r *AccountRepository) updateAccount(ctx context.Context, acct *account.Account) error {
	r.logger.InfoContext(ctx, "Attempting to update account", slog.Int64("accountID", acct.AccountID))
	start := time.Now()

	query := `
        UPDATE customers
        SET name = $1,
            mobile = $2,
            address = $3,
            plan_details = $4,
            monthly_cost = $5,
            renewal_date = $6,
            pending_balance = $7,
            updated_at = NOW()
        WHERE id = $8`

	cmdTag, err := r.db.Exec(ctx, query,
		acct.Name,
		acct.Mobile,
		acct.Address,
		acct.PlanDetails,
		acct.MonthlyCost,
		acct.RenewalDate,
		acct.PendingBalance,
		acct.AccountID,
	)

	if err != nil {
		monitoring.RecordDBQuery("update_account", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to update account", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update account: %w", apperrors.ErrDatabase, err)
	}
	monitoring.RecordDBQuery("update_account", "ok", time.Since(start))

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, account likely not found")
		return account.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Account updated successfully")
	return nil
}

func (r *AccountRepository) FindByID(ctx context.Context, accountID int64) (*account.Account, error) {
	r.logger.InfoContext(ctx, "Attempting to find account by ID", slog.Int64("accountID", accountID))

	query := `
        SELECT id, name, mobile, address, plan_details, monthly_cost, renewal_date, pending_balance, created_at, updated_at
        FROM customers
        WHERE id = $1`

	var acct account.Account
	err := r.db.QueryRow(ctx, query, accountID).Scan(
		&acct.AccountID,
		&acct.Name,
		&acct.Mobile,
		&acct.Address,
		&acct.PlanDetails,
		&acct.MonthlyCost,
		&acct.RenewalDate,
		&acct.PendingBalance,
		&acct.CreatedAt,
		&acct.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Account not found")
			return nil, account.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan account by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get account by ID: %w", apperrors.ErrDatabase, err)
	}

	return &acct, nil
}

func (r *AccountRepository) FindAll(ctx context.Context) ([]*account.Account, error) {
	r.logger.InfoContext(ctx, "Attempting to find all accounts")
	start := time.Now()

	query := `
        SELECT id, name, mobile, address, plan_details, monthly_cost, renewal_date, pending_balance, created_at, updated_at
        FROM customers
        ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		monitoring.RecordDBQuery("list_accounts", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to query accounts", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query accounts: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	accounts := make([]*account.Account, 0)
	for rows.Next() {
		var acct account.Account
		err := rows.Scan(
			&acct.AccountID,
			&acct.Name,
			&acct.Mobile,
			&acct.Address,
			&acct.PlanDetails,
			&acct.MonthlyCost,
			&acct.RenewalDate,
			&acct.PendingBalance,
			&acct.CreatedAt,
			&acct.UpdatedAt,
		)
		if err != nil {
			// One corrupt row must not block the whole listing.
			r.logger.WarnContext(ctx, "Skipping account row that failed to scan", slog.Any("error", err))
			continue
		}
		accounts = append(accounts, &acct)
	}

	if err = rows.Err(); err != nil {
		monitoring.RecordDBQuery("list_accounts", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Error iterating account rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating account rows: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("list_accounts", "ok", time.Since(start))
	r.logger.InfoContext(ctx, "Finished finding accounts", slog.Int("count", len(accounts)))
	return accounts, nil
}

// Delete removes the account and its payment history in one transaction.
// Zero rows affected is not an error; delete is idempotent.
func (r *AccountRepository) Delete(ctx context.Context, accountID int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete account", slog.Int64("accountID", accountID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			r.logger.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", rbErr))
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM payment_history WHERE customer_id = $1`, accountID); err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete payment history for account", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete payment history: %w", apperrors.ErrDatabase, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM customers WHERE id = $1`, accountID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete account", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete account: %w", apperrors.ErrDatabase, err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, account did not exist")
	} else {
		r.logger.InfoContext(ctx, "Account and payment history deleted successfully")
	}
	return nil
}
