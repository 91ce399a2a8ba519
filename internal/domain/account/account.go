package account

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"isp-ledger/internal/pkg/apperrors"
)

// BillingCycleDays is the length of one billing cycle. Renewal advancement
// always uses this fixed span, never calendar months.
const BillingCycleDays = 30

type BillingState string

const (
	StateCurrent BillingState = "CURRENT"
	StateOverdue BillingState = "OVERDUE"
)

type Account struct {
	AccountID      int64
	Name           string
	Mobile         string
	Address        string
	PlanDetails    string
	MonthlyCost    float64
	RenewalDate    *time.Time
	PendingBalance float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewAccount(name, mobile, address, planDetails string, monthlyCost float64, renewalDate *time.Time, initialBalance float64) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "cannot be empty")
	}
	if monthlyCost < 0 {
		return nil, apperrors.NewValidationError("monthlyCost", "cannot be negative")
	}

	if renewalDate != nil {
		d := DateOnly(*renewalDate)
		renewalDate = &d
	}

	return &Account{
		Name:           name,
		Mobile:         strings.TrimSpace(mobile),
		Address:        strings.TrimSpace(address),
		PlanDetails:    strings.TrimSpace(planDetails),
		MonthlyCost:    monthlyCost,
		RenewalDate:    renewalDate,
		PendingBalance: initialBalance,
	}, nil
}

// DateOnly strips the time-of-day component; billing comparisons are never
// time-of-day sensitive.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// State derives the billing state from the stored renewal date and the given
// wall-clock day. Accounts with no renewal date are considered current.
func (a *Account) State(today time.Time) BillingState {
	if a.RenewalDate == nil {
		return StateCurrent
	}
	if DateOnly(*a.RenewalDate).Before(DateOnly(today)) {
		return StateOverdue
	}
	return StateCurrent
}

// ApplyRollover advances the renewal date by every billing cycle that has
// fully elapsed before today and accrues one monthly charge per cycle into
// the pending balance. Returns the number of cycles advanced; zero means the
// account was untouched. Running it again on the same day is a no-op, so a
// partially applied sweep is safe to re-run.
func (a *Account) ApplyRollover(today time.Time) int {
	if a.RenewalDate == nil {
		return 0
	}

	day := DateOnly(today)
	due := DateOnly(*a.RenewalDate)

	cycles := 0
	for !due.AddDate(0, 0, BillingCycleDays).After(day) {
		due = due.AddDate(0, 0, BillingCycleDays)
		cycles++
	}
	if cycles == 0 {
		return 0
	}

	accrued := decimal.NewFromFloat(a.MonthlyCost).Mul(decimal.NewFromInt(int64(cycles)))
	a.PendingBalance = decimal.NewFromFloat(a.PendingBalance).Add(accrued).InexactFloat64()
	a.RenewalDate = &due
	a.UpdatedAt = time.Now()
	return cycles
}
