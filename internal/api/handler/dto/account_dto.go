package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"isp-ledger/internal/domain/account"
)

const dateLayout = "2006-01-02"

type AccountRequest struct {
	Name           string  `json:"name"`
	Mobile         string  `json:"mobile"`
	Address        string  `json:"address"`
	PlanDetails    string  `json:"planDetails"`
	MonthlyCost    float64 `json:"monthlyCost"`
	RenewalDate    string  `json:"renewalDate,omitempty"`
	PendingBalance float64 `json:"pendingBalance"`
}

func (r *AccountRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if r.MonthlyCost < 0 {
		return fmt.Errorf("monthlyCost cannot be negative")
	}
	if r.RenewalDate != "" {
		if _, err := time.Parse(dateLayout, r.RenewalDate); err != nil {
			return fmt.Errorf("renewalDate must be in YYYY-MM-DD format")
		}
	}
	return nil
}

// ToParams converts the request into service parameters. Validate must
// have passed first; the date parse error is unreachable after that.
func (r *AccountRequest) ToParams() account.AccountParams {
	var renewal *time.Time
	if r.RenewalDate != "" {
		if d, err := time.Parse(dateLayout, r.RenewalDate); err == nil {
			renewal = &d
		}
	}
	return account.AccountParams{
		Name:           r.Name,
		Mobile:         r.Mobile,
		Address:        r.Address,
		PlanDetails:    r.PlanDetails,
		MonthlyCost:    r.MonthlyCost,
		RenewalDate:    renewal,
		PendingBalance: r.PendingBalance,
	}
}

type AccountResponse struct {
	AccountID      int64     `json:"accountId"`
	Name           string    `json:"name"`
	Mobile         string    `json:"mobile,omitempty"`
	Address        string    `json:"address,omitempty"`
	PlanDetails    string    `json:"planDetails"`
	MonthlyCost    string    `json:"monthlyCost"`
	RenewalDate    *string   `json:"renewalDate,omitempty"`
	PendingBalance string    `json:"pendingBalance"`
	BillingState   string    `json:"billingState"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewAccountResponse maps a domain account onto the wire shape. With
// redactContact set, mobile and address are stripped; customer-role
// sessions only see their own billing figures.
func NewAccountResponse(acct *account.Account, redactContact bool) AccountResponse {
	if acct == nil {
		return AccountResponse{}
	}

	var renewal *string
	if acct.RenewalDate != nil {
		s := acct.RenewalDate.Format(dateLayout)
		renewal = &s
	}

	resp := AccountResponse{
		AccountID:      acct.AccountID,
		Name:           acct.Name,
		Mobile:         acct.Mobile,
		Address:        acct.Address,
		PlanDetails:    acct.PlanDetails,
		MonthlyCost:    decimal.NewFromFloat(acct.MonthlyCost).StringFixed(2),
		RenewalDate:    renewal,
		PendingBalance: decimal.NewFromFloat(acct.PendingBalance).StringFixed(2),
		BillingState:   string(acct.State(time.Now())),
		CreatedAt:      acct.CreatedAt,
		UpdatedAt:      acct.UpdatedAt,
	}
	if redactContact {
		resp.Mobile = ""
		resp.Address = ""
	}
	return resp
}

type RenewalScheduleResponse struct {
	Upcoming []AccountResponse `json:"upcoming"`
	PastDue  []AccountResponse `json:"pastDue"`
}

func NewRenewalScheduleResponse(schedule *account.RenewalSchedule) RenewalScheduleResponse {
	resp := RenewalScheduleResponse{
		Upcoming: make([]AccountResponse, len(schedule.Upcoming)),
		PastDue:  make([]AccountResponse, len(schedule.PastDue)),
	}
	for i, acct := range schedule.Upcoming {
		resp.Upcoming[i] = NewAccountResponse(acct, false)
	}
	for i, acct := range schedule.PastDue {
		resp.PastDue[i] = NewAccountResponse(acct, false)
	}
	return resp
}

type SweepResultResponse struct {
	Scanned       int `json:"scanned"`
	RolledOver    int `json:"rolledOver"`
	CyclesAccrued int `json:"cyclesAccrued"`
	Skipped       int `json:"skipped"`
	Errors        int `json:"errors"`
}

func NewSweepResultResponse(result account.SweepResult) SweepResultResponse {
	return SweepResultResponse(result)
}
