package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"isp-ledger/internal/domain/account"
)

// RolloverJob runs the overdue-account sweep. It is scheduled by cron and
// also invoked once at startup so a service that was down over a renewal
// boundary catches up immediately.
type RolloverJob struct {
	accountService account.AccountService
	timeout        time.Duration
	logger         *slog.Logger
}

func NewRolloverJob(accountSvc account.AccountService, timeout time.Duration, logger *slog.Logger) *RolloverJob {
	if accountSvc == nil || logger == nil {
		panic("RolloverJob dependencies cannot be nil")
	}
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &RolloverJob{
		accountService: accountSvc,
		timeout:        timeout,
		logger:         logger.With("job", "Rollover"),
	}
}

func (j *RolloverJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting billing rollover job.")

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	result, err := j.accountService.SweepOverdueAccounts(ctx, time.Now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Billing rollover job aborted.", slog.Any("error", err))
		return fmt.Errorf("rollover sweep failed: %w", err)
	}

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("accounts_scanned", result.Scanned),
		slog.Int("accounts_rolled_over", result.RolledOver),
		slog.Int("cycles_accrued", result.CyclesAccrued),
		slog.Int("accounts_skipped", result.Skipped),
		slog.Int("errors_encountered", result.Errors),
	)
	if result.Errors > 0 {
		summaryLog.WarnContext(ctx, "Billing rollover job finished with errors.")
		return fmt.Errorf("rollover job completed with %d errors", result.Errors)
	}

	summaryLog.InfoContext(ctx, "Billing rollover job finished successfully.")
	return nil
}
