package handler

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"isp-ledger/internal/domain/account"
	"isp-ledger/internal/domain/ledger"
	"isp-ledger/internal/report"
)

type ReportHandler struct {
	accounts   account.AccountService
	payments   ledger.LedgerService
	generator  *report.Generator
	windowDays int
	logger     *slog.Logger
}

func NewReportHandler(accounts account.AccountService, payments ledger.LedgerService,
	generator *report.Generator, windowDays int, l *slog.Logger) *ReportHandler {
	if accounts == nil || payments == nil || generator == nil {
		panic("report handler dependencies cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	if windowDays <= 0 {
		windowDays = 10
	}
	return &ReportHandler{
		accounts:   accounts,
		payments:   payments,
		generator:  generator,
		windowDays: windowDays,
		logger:     l.With("component", "ReportHandler"),
	}
}

// respondPDF either streams the document as a download or, when the
// caller asked for encoding=base64, wraps it in a JSON envelope for
// clients that cannot handle binary bodies.
func (h *ReportHandler) respondPDF(w http.ResponseWriter, r *http.Request, filename string, data []byte) {
	if r.URL.Query().Get("encoding") == "base64" {
		respondJSON(w, http.StatusOK, map[string]string{
			"filename":    filename,
			"contentType": "application/pdf",
			"data":        base64.StdEncoding.EncodeToString(data),
		})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// PendingBalances handles GET /reports/pending-balances
// @Summary Pending balance summary report
// @Description Renders a PDF listing every account with a positive pending balance, with a grand total.
// @Tags Reports
// @Produce application/pdf
// @Param encoding query string false "Set to 'base64' to receive a JSON envelope instead of the raw PDF"
// @Success 200 {file} binary "PDF document"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/pending-balances [get]
// @Security BearerAuth
func (h *ReportHandler) PendingBalances(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "Generating pending balance report")

	accounts, err := h.accounts.ListAccounts(r.Context(), false)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list accounts for report", slog.Any("error", err))
		respondError(w, err)
		return
	}

	data, err := h.generator.PendingBalances(accounts)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render pending balance report", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.respondPDF(w, r, report.Filename(report.KindPendingBalances, 0, time.Now()), data)
}

// PaymentHistory handles GET /reports/accounts/{accountID}/payments
// @Summary Payment history report
// @Description Renders a PDF of one account's payment history, most recent first, with a total row.
// @Tags Reports
// @Produce application/pdf
// @Param accountID path int true "Account ID" Minimum(1)
// @Param encoding query string false "Set to 'base64' to receive a JSON envelope instead of the raw PDF"
// @Success 200 {file} binary "PDF document"
// @Failure 400 {object} dto.ErrorResponse "Invalid account ID"
// @Failure 403 {object} dto.ErrorResponse "Session not scoped to this account"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/accounts/{accountID}/payments [get]
// @Security BearerAuth
func (h *ReportHandler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	accountID, err := getAccountIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get account ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if err := authorizeAccountAccess(r, accountID); err != nil {
		h.logger.WarnContext(r.Context(), "Report access denied", slog.Int64("accountID", accountID))
		respondError(w, err)
		return
	}

	acct, err := h.accounts.GetAccount(r.Context(), accountID)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to load account for report", slog.Any("error", err))
		respondError(w, err)
		return
	}

	payments, err := h.payments.ListPaymentHistory(r.Context(), accountID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list payments for report", slog.Any("error", err))
		respondError(w, err)
		return
	}

	data, err := h.generator.PaymentHistory(acct, payments)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render payment history report", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.respondPDF(w, r, report.Filename(report.KindPaymentHistory, accountID, time.Now()), data)
}

// Renewals handles GET /reports/renewals
// @Summary Renewal schedule report
// @Description Renders a PDF of past-due and upcoming renewals within the configured window.
// @Tags Reports
// @Produce application/pdf
// @Param encoding query string false "Set to 'base64' to receive a JSON envelope instead of the raw PDF"
// @Success 200 {file} binary "PDF document"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/renewals [get]
// @Security BearerAuth
func (h *ReportHandler) Renewals(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "Generating renewal schedule report")

	schedule, err := h.accounts.ListRenewals(r.Context(), time.Now(), h.windowDays)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list renewals for report", slog.Any("error", err))
		respondError(w, err)
		return
	}

	data, err := h.generator.Renewals(schedule)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render renewal report", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.respondPDF(w, r, report.Filename(report.KindRenewals, 0, time.Now()), data)
}
