package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"isp-ledger/internal/domain/account"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

var pgxmockExpectationsNotMetMsg = "pgxmock expectations were not met"

var renewalDate = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

func testAccount() *account.Account {
	return &account.Account{
		AccountID:      1,
		Name:           "John Doe",
		Mobile:         "9876543210",
		Address:        "123 Main St",
		PlanDetails:    "50Mbps Unlimited",
		MonthlyCost:    500,
		RenewalDate:    &renewalDate,
		PendingBalance: 0,
	}
}

func setupAccountRepo(t *testing.T) (context.Context, *AccountRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewAccountRepository(mockPool, logger)

	return ctx, repo, mockPool
}

const insertAccountQuery = `
        INSERT INTO customers (name, mobile, address, plan_details, monthly_cost, renewal_date, pending_balance, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id, created_at, updated_at`

const updateAccountQuery = `
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

const selectAccountColumns = "id, name, mobile, address, plan_details, monthly_cost, renewal_date, pending_balance, created_at, updated_at"

func TestSaveNewAccountWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	acct := testAccount()
	acct.AccountID = 0
	now := time.Now()

	mockPool.ExpectQuery(regexp.QuoteMeta(insertAccountQuery)).WithArgs(
		acct.Name,
		acct.Mobile,
		acct.Address,
		acct.PlanDetails,
		acct.MonthlyCost,
		acct.RenewalDate,
		acct.PendingBalance,
	).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
		AddRow(int64(1), now, now))

	err := repo.Save(ctx, acct)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), acct.AccountID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSaveExistingAccountWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	acct := testAccount()

	mockPool.ExpectExec(regexp.QuoteMeta(updateAccountQuery)).WithArgs(
		acct.Name,
		acct.Mobile,
		acct.Address,
		acct.PlanDetails,
		acct.MonthlyCost,
		acct.RenewalDate,
		acct.PendingBalance,
		acct.AccountID,
	).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Save(ctx, acct)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSaveExistingAccountWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	acct := testAccount()
	acct.AccountID = 999

	mockPool.ExpectExec(regexp.QuoteMeta(updateAccountQuery)).WithArgs(
		acct.Name,
		acct.Mobile,
		acct.Address,
		acct.PlanDetails,
		acct.MonthlyCost,
		acct.RenewalDate,
		acct.PendingBalance,
		acct.AccountID,
	).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Save(ctx, acct)
	assert.ErrorIs(t, err, account.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSaveNilAccount(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	err := repo.Save(ctx, nil)
	assert.Error(t, err)
}

func TestFindAccountByIDWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	acct := testAccount()
	now := time.Now()

	mockPool.ExpectQuery("SELECT " + regexp.QuoteMeta(selectAccountColumns)).
		WithArgs(acct.AccountID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "mobile", "address", "plan_details",
			"monthly_cost", "renewal_date", "pending_balance", "created_at", "updated_at",
		}).AddRow(
			acct.AccountID, acct.Name, acct.Mobile, acct.Address, acct.PlanDetails,
			acct.MonthlyCost, acct.RenewalDate, acct.PendingBalance, now, now,
		))

	got, err := repo.FindByID(ctx, acct.AccountID)
	assert.NoError(t, err)
	assert.Equal(t, acct.Name, got.Name)
	assert.Equal(t, acct.MonthlyCost, got.MonthlyCost)
	assert.Equal(t, renewalDate, *got.RenewalDate)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAccountByIDWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery("SELECT " + regexp.QuoteMeta(selectAccountColumns)).
		WithArgs(int64(999)).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.FindByID(ctx, 999)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, account.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAllAccountsWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "name", "mobile", "address", "plan_details",
		"monthly_cost", "renewal_date", "pending_balance", "created_at", "updated_at",
	}).
		AddRow(int64(1), "John Doe", "9876543210", "123 Main St", "50Mbps", 500.0, &renewalDate, 0.0, now, now).
		AddRow(int64(2), "Jane Roe", "", "", "100Mbps", 800.0, (*time.Time)(nil), 800.0, now, now)

	mockPool.ExpectQuery("SELECT " + regexp.QuoteMeta(selectAccountColumns)).
		WillReturnRows(rows)

	accounts, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, accounts, 2)
	assert.Equal(t, int64(1), accounts[0].AccountID)
	assert.Nil(t, accounts[1].RenewalDate)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAllAccountsWhenQueryFails(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery("SELECT " + regexp.QuoteMeta(selectAccountColumns)).
		WillReturnError(errors.New("connection reset"))

	accounts, err := repo.FindAll(ctx)
	assert.Nil(t, accounts)
	assert.Error(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteAccountWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM payment_history WHERE customer_id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM customers WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mockPool.ExpectCommit()

	err := repo.Delete(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteAccountWhenMissingIsIdempotent(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM payment_history WHERE customer_id = $1`)).
		WithArgs(int64(999)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM customers WHERE id = $1`)).
		WithArgs(int64(999)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mockPool.ExpectCommit()

	err := repo.Delete(ctx, 999)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteAccountWhenHistoryDeleteFails(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM payment_history WHERE customer_id = $1`)).
		WithArgs(int64(1)).
		WillReturnError(errors.New("deadlock detected"))
	mockPool.ExpectRollback()

	err := repo.Delete(ctx, 1)
	assert.Error(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
