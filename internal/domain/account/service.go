package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"isp-ledger/internal/event"
	"isp-ledger/internal/infrastructure/monitoring"
)

const accountNotFoundMsg = "Account not found by repository"

type AccountParams struct {
	Name           string
	Mobile         string
	Address        string
	PlanDetails    string
	MonthlyCost    float64
	RenewalDate    *time.Time
	PendingBalance float64
}

type SweepResult struct {
	Scanned       int
	RolledOver    int
	CyclesAccrued int
	Skipped       int
	Errors        int
}

// RenewalSchedule buckets accounts by their renewal date relative to today.
type RenewalSchedule struct {
	Upcoming []*Account
	PastDue  []*Account
}

type AccountService interface {
	CreateAccount(ctx context.Context, params AccountParams) (*Account, error)
	GetAccount(ctx context.Context, accountID int64) (*Account, error)
	ListAccounts(ctx context.Context, sortByRenewal bool) ([]*Account, error)
	UpdateAccount(ctx context.Context, accountID int64, params AccountParams) (*Account, error)
	DeleteAccount(ctx context.Context, accountID int64) error
	ListRenewals(ctx context.Context, today time.Time, windowDays int) (*RenewalSchedule, error)
	SweepOverdueAccounts(ctx context.Context, today time.Time) (SweepResult, error)
}

var _ AccountService = (*accountService)(nil)

type accountService struct {
	repo   AccountRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewAccountService(repo AccountRepository, pub event.EventPublisher, logger *slog.Logger) AccountService {
	if repo == nil {
		panic("account repository cannot be nil")
	}
	if pub == nil {
		pub = event.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAccountService, using default stderr handler")
	}

	return &accountService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "accountService")),
	}
}

func newAccountEventPayload(acct *Account) event.AccountEventPayload {
	if acct == nil {
		return event.AccountEventPayload{}
	}
	return event.AccountEventPayload{
		AccountID:      acct.AccountID,
		Name:           acct.Name,
		Mobile:         acct.Mobile,
		Address:        acct.Address,
		PlanDetails:    acct.PlanDetails,
		MonthlyCost:    acct.MonthlyCost,
		RenewalDate:    acct.RenewalDate,
		PendingBalance: acct.PendingBalance,
		CreatedAt:      acct.CreatedAt,
		UpdatedAt:      acct.UpdatedAt,
	}
}

func (s *accountService) publishAccountUpdated(ctx context.Context, acct *Account) {
	evt := event.AccountUpdatedEvent{
		Timestamp: time.Now(),
		Payload:   newAccountEventPayload(acct),
	}
	if err := s.pub.PublishAccountUpdated(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish account update event", slog.Any("error", err))
	}
}

func (s *accountService) CreateAccount(ctx context.Context, params AccountParams) (*Account, error) {
	s.logger.InfoContext(ctx, "Attempting to create new account")

	acct, err := NewAccount(params.Name, params.Mobile, params.Address, params.PlanDetails,
		params.MonthlyCost, params.RenewalDate, params.PendingBalance)
	if err != nil {
		s.logger.WarnContext(ctx, "Account validation failed", slog.Any("error", err))
		return nil, err
	}

	if err := s.repo.Save(ctx, acct); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new account", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new account: %w", err)
	}

	monitoring.RecordAccountCreated()

	createdEvent := event.AccountCreatedEvent{
		Timestamp: time.Now(),
		Payload:   newAccountEventPayload(acct),
	}
	if pubErr := s.pub.PublishAccountCreated(ctx, createdEvent); pubErr != nil {
		s.logger.ErrorContext(ctx, "Account created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	s.logger.InfoContext(ctx, "Successfully created new account", slog.Int64("accountID", acct.AccountID))
	return acct, nil
}

func (s *accountService) GetAccount(ctx context.Context, accountID int64) (*Account, error) {
	s.logger.InfoContext(ctx, "Attempting to get account by ID", slog.Int64("accountID", accountID))

	acct, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, accountNotFoundMsg, slog.Int64("accountID", accountID))
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding account", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get account %d: %w", accountID, err)
	}

	return acct, nil
}

func (s *accountService) ListAccounts(ctx context.Context, sortByRenewal bool) ([]*Account, error) {
	s.logger.InfoContext(ctx, "Attempting to list all accounts")

	accounts, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing accounts", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if sortByRenewal {
		sort.SliceStable(accounts, func(i, j int) bool {
			// Accounts without a renewal date sort last.
			switch {
			case accounts[i].RenewalDate == nil:
				return false
			case accounts[j].RenewalDate == nil:
				return true
			default:
				return accounts[i].RenewalDate.Before(*accounts[j].RenewalDate)
			}
		})
	}

	s.logger.InfoContext(ctx, "Successfully retrieved accounts", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID int64, params AccountParams) (*Account, error) {
	s.logger.InfoContext(ctx, "Attempting to update account", slog.Int64("accountID", accountID))

	// Validate the replacement values with the same rules as creation.
	replacement, err := NewAccount(params.Name, params.Mobile, params.Address, params.PlanDetails,
		params.MonthlyCost, params.RenewalDate, params.PendingBalance)
	if err != nil {
		s.logger.WarnContext(ctx, "Account validation failed", slog.Any("error", err))
		return nil, err
	}

	acct, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, accountNotFoundMsg, slog.Int64("accountID", accountID))
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding account for update", slog.Any("error", err))
		return nil, fmt.Errorf("cannot find account %d to update: %w", accountID, err)
	}

	acct.Name = replacement.Name
	acct.Mobile = replacement.Mobile
	acct.Address = replacement.Address
	acct.PlanDetails = replacement.PlanDetails
	acct.MonthlyCost = replacement.MonthlyCost
	acct.RenewalDate = replacement.RenewalDate
	acct.PendingBalance = replacement.PendingBalance

	if err := s.repo.Save(ctx, acct); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Account disappeared before save completed", slog.Int64("accountID", accountID))
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository failed to save updated account", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save updated account %d: %w", accountID, err)
	}

	s.publishAccountUpdated(ctx, acct)
	s.logger.InfoContext(ctx, "Successfully updated account", slog.Int64("accountID", accountID))
	return acct, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID int64) error {
	s.logger.InfoContext(ctx, "Attempting to delete account", slog.Int64("accountID", accountID))

	if err := s.repo.Delete(ctx, accountID); err != nil {
		s.logger.ErrorContext(ctx, "Repository error deleting account", slog.Any("error", err))
		return fmt.Errorf("failed to delete account %d: %w", accountID, err)
	}

	evt := event.AccountDeletedEvent{Timestamp: time.Now(), AccountID: accountID}
	if pubErr := s.pub.PublishAccountDeleted(ctx, evt); pubErr != nil {
		s.logger.ErrorContext(ctx, "Account deleted, but FAILED to publish deletion event", slog.Any("error", pubErr))
	}

	s.logger.InfoContext(ctx, "Successfully deleted account", slog.Int64("accountID", accountID))
	return nil
}

func (s *accountService) ListRenewals(ctx context.Context, today time.Time, windowDays int) (*RenewalSchedule, error) {
	s.logger.InfoContext(ctx, "Attempting to list renewals", slog.Int("windowDays", windowDays))

	accounts, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing accounts for renewals", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list renewals: %w", err)
	}

	day := DateOnly(today)
	horizon := day.AddDate(0, 0, windowDays)

	schedule := &RenewalSchedule{
		Upcoming: make([]*Account, 0),
		PastDue:  make([]*Account, 0),
	}
	for _, acct := range accounts {
		if acct.RenewalDate == nil {
			continue
		}
		renewal := DateOnly(*acct.RenewalDate)
		switch {
		case renewal.Before(day):
			schedule.PastDue = append(schedule.PastDue, acct)
		case !renewal.After(horizon):
			schedule.Upcoming = append(schedule.Upcoming, acct)
		}
	}

	byRenewal := func(accts []*Account) func(i, j int) bool {
		return func(i, j int) bool {
			return accts[i].RenewalDate.Before(*accts[j].RenewalDate)
		}
	}
	sort.SliceStable(schedule.Upcoming, byRenewal(schedule.Upcoming))
	sort.SliceStable(schedule.PastDue, byRenewal(schedule.PastDue))

	return schedule, nil
}

// SweepOverdueAccounts applies the rollover to every account whose renewal
// date lies at least one full cycle in the past. Each account is saved on its
// own; a failure mid-sweep leaves earlier accounts rolled over, which is safe
// because the per-account rollover is idempotent within a day.
func (s *accountService) SweepOverdueAccounts(ctx context.Context, today time.Time) (SweepResult, error) {
	s.logger.InfoContext(ctx, "Starting overdue account sweep")
	start := time.Now()

	accounts, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list accounts for sweep, aborting", slog.Any("error", err))
		return SweepResult{}, fmt.Errorf("cannot sweep, failed to list accounts: %w", err)
	}

	result := SweepResult{Scanned: len(accounts)}
	for _, acct := range accounts {
		logCtx := s.logger.With(slog.Int64("accountID", acct.AccountID))

		if acct.RenewalDate == nil {
			result.Skipped++
			continue
		}

		cycles := acct.ApplyRollover(today)
		if cycles == 0 {
			continue
		}

		if err := s.repo.Save(ctx, acct); err != nil {
			if errors.Is(err, ErrNotFound) {
				logCtx.WarnContext(ctx, "Account vanished during sweep, skipping", slog.Any("error", err))
				result.Skipped++
				continue
			}
			logCtx.ErrorContext(ctx, "Failed to save rolled-over account", slog.Any("error", err))
			result.Errors++
			continue
		}

		monitoring.RecordRollover(cycles)
		result.RolledOver++
		result.CyclesAccrued += cycles

		evt := event.AccountRolledOverEvent{
			Timestamp:      time.Now(),
			AccountID:      acct.AccountID,
			CyclesAdvanced: cycles,
			NewRenewalDate: *acct.RenewalDate,
			NewBalance:     acct.PendingBalance,
		}
		if pubErr := s.pub.PublishAccountRolledOver(ctx, evt); pubErr != nil {
			logCtx.ErrorContext(ctx, "Rolled over account, but FAILED to publish event", slog.Any("error", pubErr))
		}

		logCtx.InfoContext(ctx, "Account rolled over",
			slog.Int("cycles", cycles),
			slog.Time("newRenewalDate", *acct.RenewalDate),
			slog.Float64("newBalance", acct.PendingBalance))
	}

	monitoring.Business.RolloverSweepDuration.Observe(time.Since(start).Seconds())
	s.logger.InfoContext(ctx, "Overdue account sweep finished",
		slog.Int("scanned", result.Scanned),
		slog.Int("rolledOver", result.RolledOver),
		slog.Int("cyclesAccrued", result.CyclesAccrued),
		slog.Int("skipped", result.Skipped),
		slog.Int("errors", result.Errors))
	return result, nil
}
