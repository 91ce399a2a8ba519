package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"isp-ledger/internal/event"
	"isp-ledger/internal/infrastructure/monitoring"
	"isp-ledger/internal/pkg/apperrors"
)

type LedgerService interface {
	// RecordPayment appends a payment and decrements the account's pending
	// balance. The renewal date is never touched here; renewal advancement
	// belongs to the rollover sweep alone.
	RecordPayment(ctx context.Context, accountID int64, amountPaid float64, paymentDate time.Time) (*Payment, error)

	ListPaymentHistory(ctx context.Context, accountID int64) ([]*Payment, error)
}

var _ LedgerService = (*ledgerService)(nil)

type ledgerService struct {
	repo   LedgerRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewLedgerService(repo LedgerRepository, pub event.EventPublisher, logger *slog.Logger) LedgerService {
	if repo == nil {
		panic("ledger repository cannot be nil")
	}
	if pub == nil {
		pub = event.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewLedgerService, using default stderr handler")
	}

	return &ledgerService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "ledgerService")),
	}
}

func (s *ledgerService) RecordPayment(ctx context.Context, accountID int64, amountPaid float64, paymentDate time.Time) (*Payment, error) {
	logCtx := s.logger.With(slog.Int64("accountID", accountID), slog.Float64("amount", amountPaid))
	logCtx.InfoContext(ctx, "Attempting to record payment")

	if amountPaid <= 0 {
		logCtx.WarnContext(ctx, "Validation failed: payment amount must be positive")
		return nil, fmt.Errorf("%w: got %.2f", apperrors.ErrInvalidPaymentAmount, amountPaid)
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	payment, err := s.repo.RecordPayment(ctx, accountID, amountPaid, paymentDate)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			logCtx.WarnContext(ctx, "Payment rejected: account does not exist")
			return nil, ErrAccountNotFound
		}
		logCtx.ErrorContext(ctx, "Repository failed to record payment", slog.Any("error", err))
		return nil, fmt.Errorf("failed to record payment for account %d: %w", accountID, err)
	}

	monitoring.RecordPaymentRecorded()

	evt := event.PaymentRecordedEvent{
		Timestamp:   time.Now(),
		PaymentID:   payment.PaymentID,
		AccountID:   payment.AccountID,
		AmountPaid:  payment.AmountPaid,
		PaymentDate: payment.PaymentDate,
	}
	if pubErr := s.pub.PublishPaymentRecorded(ctx, evt); pubErr != nil {
		logCtx.ErrorContext(ctx, "Payment recorded, but FAILED to publish event", slog.Any("error", pubErr))
	}

	logCtx.InfoContext(ctx, "Payment recorded successfully", slog.Int64("paymentID", payment.PaymentID))
	return payment, nil
}

func (s *ledgerService) ListPaymentHistory(ctx context.Context, accountID int64) ([]*Payment, error) {
	s.logger.InfoContext(ctx, "Attempting to list payment history", slog.Int64("accountID", accountID))

	payments, err := s.repo.FindByAccountID(ctx, accountID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing payment history", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list payment history for account %d: %w", accountID, err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved payment history", slog.Int("count", len(payments)))
	return payments, nil
}
