package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"isp-ledger/internal/api/handler/dto"
	"isp-ledger/internal/domain/ledger"
	"isp-ledger/internal/pkg/apperrors"
)

type PaymentHandler struct {
	service ledger.LedgerService
	logger  *slog.Logger
}

func NewPaymentHandler(s ledger.LedgerService, l *slog.Logger) *PaymentHandler {
	if s == nil {
		panic("ledger service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &PaymentHandler{
		service: s,
		logger:  l.With("component", "PaymentHandler"),
	}
}

// RecordPayment handles POST /accounts/{accountID}/payments
// @Summary Record a payment
// @Description Appends a payment to the account's history and decrements its pending balance. The renewal date is never changed by a payment.
// @Tags Payments
// @Accept json
// @Produce json
// @Param accountID path int true "Account ID" Minimum(1)
// @Param request body dto.RecordPaymentRequest true "Payment payload (amount must be positive)"
// @Success 201 {object} dto.PaymentResponse "Payment recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid account ID or payment payload"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts/{accountID}/payments [post]
// @Security BearerAuth
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	accountID, err := getAccountIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get account ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.RecordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	payment, err := h.service.RecordPayment(r.Context(), accountID, req.Amount, req.ParsedDate())
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, ledger.ErrAccountNotFound) && !errors.Is(err, apperrors.ErrInvalidPaymentAmount) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to record payment", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewPaymentResponse(payment)
	h.logger.InfoContext(r.Context(), "Payment recorded successfully",
		slog.Int64("accountID", accountID), slog.Int64("paymentID", resp.PaymentID))
	respondJSON(w, http.StatusCreated, resp)
}

// ListPaymentHistory handles GET /accounts/{accountID}/payments
// @Summary List payment history
// @Description Returns the account's payments, most recent first. Customer sessions may only read their own history.
// @Tags Payments
// @Produce json
// @Param accountID path int true "Account ID" Minimum(1)
// @Success 200 {array} dto.PaymentResponse "Payment history"
// @Failure 400 {object} dto.ErrorResponse "Invalid account ID"
// @Failure 403 {object} dto.ErrorResponse "Session not scoped to this account"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts/{accountID}/payments [get]
// @Security BearerAuth
func (h *PaymentHandler) ListPaymentHistory(w http.ResponseWriter, r *http.Request) {
	accountID, err := getAccountIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get account ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if err := authorizeAccountAccess(r, accountID); err != nil {
		h.logger.WarnContext(r.Context(), "Payment history access denied", slog.Int64("accountID", accountID))
		respondError(w, err)
		return
	}

	payments, err := h.service.ListPaymentHistory(r.Context(), accountID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list payment history", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewPaymentListResponse(payments)
	h.logger.InfoContext(r.Context(), "Payment history listed successfully",
		slog.Int64("accountID", accountID), slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}
