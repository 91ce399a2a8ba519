package event

import (
	"context"
	"time"
)

type AccountEventPayload struct {
	AccountID      int64      `json:"accountId"`
	Name           string     `json:"name"`
	Mobile         string     `json:"mobile,omitempty"`
	Address        string     `json:"address,omitempty"`
	PlanDetails    string     `json:"planDetails,omitempty"`
	MonthlyCost    float64    `json:"monthlyCost"`
	RenewalDate    *time.Time `json:"renewalDate,omitempty"`
	PendingBalance float64    `json:"pendingBalance"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type AccountCreatedEvent struct {
	Timestamp time.Time           `json:"timestamp"`
	Payload   AccountEventPayload `json:"payload"`
}

type AccountUpdatedEvent struct {
	Timestamp time.Time           `json:"timestamp"`
	Payload   AccountEventPayload `json:"payload"`
}

type AccountDeletedEvent struct {
	Timestamp time.Time `json:"timestamp"`
	AccountID int64     `json:"accountId"`
}

type PaymentRecordedEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	PaymentID   int64     `json:"paymentId"`
	AccountID   int64     `json:"accountId"`
	AmountPaid  float64   `json:"amountPaid"`
	PaymentDate time.Time `json:"paymentDate"`
	NewBalance  float64   `json:"newBalance"`
}

type AccountRolledOverEvent struct {
	Timestamp      time.Time `json:"timestamp"`
	AccountID      int64     `json:"accountId"`
	CyclesAdvanced int       `json:"cyclesAdvanced"`
	NewRenewalDate time.Time `json:"newRenewalDate"`
	NewBalance     float64   `json:"newBalance"`
}

type EventPublisher interface {
	PublishAccountCreated(ctx context.Context, event AccountCreatedEvent) error
	PublishAccountUpdated(ctx context.Context, event AccountUpdatedEvent) error
	PublishAccountDeleted(ctx context.Context, event AccountDeletedEvent) error
	PublishPaymentRecorded(ctx context.Context, event PaymentRecordedEvent) error
	PublishAccountRolledOver(ctx context.Context, event AccountRolledOverEvent) error
}

// NoopPublisher satisfies EventPublisher when RabbitMQ is disabled.
type NoopPublisher struct{}

var _ EventPublisher = (*NoopPublisher)(nil)

func (NoopPublisher) PublishAccountCreated(context.Context, AccountCreatedEvent) error { return nil }
func (NoopPublisher) PublishAccountUpdated(context.Context, AccountUpdatedEvent) error { return nil }
func (NoopPublisher) PublishAccountDeleted(context.Context, AccountDeletedEvent) error { return nil }
func (NoopPublisher) PublishPaymentRecorded(context.Context, PaymentRecordedEvent) error {
	return nil
}
func (NoopPublisher) PublishAccountRolledOver(context.Context, AccountRolledOverEvent) error {
	return nil
}
