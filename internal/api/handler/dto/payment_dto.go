package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"isp-ledger/internal/domain/ledger"
)

type RecordPaymentRequest struct {
	Amount float64 `json:"amount"`

	// PaymentDate is optional; an empty value means today.
	PaymentDate string `json:"paymentDate,omitempty"`
}

func (r *RecordPaymentRequest) Validate() error {
	if r.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if r.PaymentDate != "" {
		if _, err := time.Parse(dateLayout, r.PaymentDate); err != nil {
			return fmt.Errorf("paymentDate must be in YYYY-MM-DD format")
		}
	}
	return nil
}

func (r *RecordPaymentRequest) ParsedDate() time.Time {
	if r.PaymentDate == "" {
		return time.Time{}
	}
	d, err := time.Parse(dateLayout, r.PaymentDate)
	if err != nil {
		return time.Time{}
	}
	return d
}

type PaymentResponse struct {
	PaymentID   int64     `json:"paymentId"`
	AccountID   int64     `json:"accountId"`
	AmountPaid  string    `json:"amountPaid"`
	PaymentDate string    `json:"paymentDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewPaymentResponse(p *ledger.Payment) PaymentResponse {
	if p == nil {
		return PaymentResponse{}
	}
	return PaymentResponse{
		PaymentID:   p.PaymentID,
		AccountID:   p.AccountID,
		AmountPaid:  decimal.NewFromFloat(p.AmountPaid).StringFixed(2),
		PaymentDate: p.PaymentDate.Format(dateLayout),
		CreatedAt:   p.CreatedAt,
	}
}

func NewPaymentListResponse(payments []*ledger.Payment) []PaymentResponse {
	resp := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = NewPaymentResponse(p)
	}
	return resp
}
