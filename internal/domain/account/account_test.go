package account_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"isp-ledger/internal/domain/account"
	"isp-ledger/internal/pkg/apperrors"
)

func datePtr(t time.Time) *time.Time {
	d := account.DateOnly(t)
	return &d
}

func TestNewAccount(t *testing.T) {
	renewal := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		acct, err := account.NewAccount("  John Doe ", " 9876543210 ", "123 Main St", "Unlimited 50Mbps", 500, &renewal, 100)
		assert.NoError(t, err)
		assert.Equal(t, "John Doe", acct.Name)
		assert.Equal(t, "9876543210", acct.Mobile)
		assert.Equal(t, "123 Main St", acct.Address)
		assert.Equal(t, "Unlimited 50Mbps", acct.PlanDetails)
		assert.Equal(t, 500.0, acct.MonthlyCost)
		assert.Equal(t, 100.0, acct.PendingBalance)
		assert.Equal(t, renewal, *acct.RenewalDate)
	})

	t.Run("Error - Empty Name", func(t *testing.T) {
		_, err := account.NewAccount("   ", "", "", "", 500, &renewal, 0)
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Error - Negative Monthly Cost", func(t *testing.T) {
		_, err := account.NewAccount("John", "", "", "", -1, &renewal, 0)
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Nil renewal date is allowed", func(t *testing.T) {
		acct, err := account.NewAccount("John", "", "", "", 500, nil, 0)
		assert.NoError(t, err)
		assert.Nil(t, acct.RenewalDate)
	})
}

func TestAccountState(t *testing.T) {
	today := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

	t.Run("Overdue when renewal is before today", func(t *testing.T) {
		acct := &account.Account{RenewalDate: datePtr(today.AddDate(0, 0, -1))}
		assert.Equal(t, account.StateOverdue, acct.State(today))
	})

	t.Run("Current when renewal is today", func(t *testing.T) {
		acct := &account.Account{RenewalDate: datePtr(today)}
		assert.Equal(t, account.StateCurrent, acct.State(today))
	})

	t.Run("Current when renewal is in the future", func(t *testing.T) {
		acct := &account.Account{RenewalDate: datePtr(today.AddDate(0, 0, 7))}
		assert.Equal(t, account.StateCurrent, acct.State(today))
	})

	t.Run("Current when renewal date is missing", func(t *testing.T) {
		acct := &account.Account{}
		assert.Equal(t, account.StateCurrent, acct.State(today))
	})
}

func TestApplyRollover(t *testing.T) {
	today := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

	t.Run("Two full cycles elapsed", func(t *testing.T) {
		acct := &account.Account{
			MonthlyCost:    500,
			PendingBalance: 0,
			RenewalDate:    datePtr(today.AddDate(0, 0, -65)),
		}

		cycles := acct.ApplyRollover(today)

		assert.Equal(t, 2, cycles)
		assert.Equal(t, 1000.0, acct.PendingBalance)
		assert.Equal(t, account.DateOnly(today.AddDate(0, 0, -5)), *acct.RenewalDate)
	})

	t.Run("Idempotent within the same day", func(t *testing.T) {
		acct := &account.Account{
			MonthlyCost:    500,
			PendingBalance: 0,
			RenewalDate:    datePtr(today.AddDate(0, 0, -65)),
		}

		first := acct.ApplyRollover(today)
		balanceAfterFirst := acct.PendingBalance
		renewalAfterFirst := *acct.RenewalDate

		second := acct.ApplyRollover(today)

		assert.Equal(t, 2, first)
		assert.Equal(t, 0, second)
		assert.Equal(t, balanceAfterFirst, acct.PendingBalance)
		assert.Equal(t, renewalAfterFirst, *acct.RenewalDate)
	})

	t.Run("Exactly one cycle overdue lands on today", func(t *testing.T) {
		acct := &account.Account{
			MonthlyCost:    299.50,
			PendingBalance: 100,
			RenewalDate:    datePtr(today.AddDate(0, 0, -30)),
		}

		cycles := acct.ApplyRollover(today)

		assert.Equal(t, 1, cycles)
		assert.Equal(t, 399.50, acct.PendingBalance)
		assert.Equal(t, account.DateOnly(today), *acct.RenewalDate)
	})

	t.Run("Overdue by less than a cycle accrues nothing", func(t *testing.T) {
		acct := &account.Account{
			MonthlyCost:    500,
			PendingBalance: 250,
			RenewalDate:    datePtr(today.AddDate(0, 0, -5)),
		}

		cycles := acct.ApplyRollover(today)

		assert.Equal(t, 0, cycles)
		assert.Equal(t, 250.0, acct.PendingBalance)
		assert.Equal(t, account.DateOnly(today.AddDate(0, 0, -5)), *acct.RenewalDate)
	})

	t.Run("Future renewal date is untouched", func(t *testing.T) {
		renewal := datePtr(today.AddDate(0, 0, 10))
		acct := &account.Account{MonthlyCost: 500, PendingBalance: 0, RenewalDate: renewal}

		assert.Equal(t, 0, acct.ApplyRollover(today))
		assert.Equal(t, 0.0, acct.PendingBalance)
	})

	t.Run("Nil renewal date is skipped", func(t *testing.T) {
		acct := &account.Account{MonthlyCost: 500, PendingBalance: 0}

		assert.Equal(t, 0, acct.ApplyRollover(today))
		assert.Nil(t, acct.RenewalDate)
	})

	t.Run("Time of day does not change the cycle count", func(t *testing.T) {
		lateEvening := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
		acctA := &account.Account{MonthlyCost: 500, RenewalDate: datePtr(today.AddDate(0, 0, -65))}
		acctB := &account.Account{MonthlyCost: 500, RenewalDate: datePtr(today.AddDate(0, 0, -65))}

		assert.Equal(t, acctA.ApplyRollover(today), acctB.ApplyRollover(lateEvening))
		assert.Equal(t, *acctA.RenewalDate, *acctB.RenewalDate)
	})
}
