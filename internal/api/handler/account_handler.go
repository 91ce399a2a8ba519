package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"isp-ledger/internal/api/handler/dto"
	"isp-ledger/internal/api/middleware"
	"isp-ledger/internal/domain/account"
	"isp-ledger/internal/pkg/apperrors"
)

type AccountHandler struct {
	service    account.AccountService
	windowDays int
	logger     *slog.Logger
}

func NewAccountHandler(s account.AccountService, windowDays int, l *slog.Logger) *AccountHandler {
	if s == nil {
		panic("account service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	if windowDays <= 0 {
		windowDays = 10
	}
	return &AccountHandler{
		service:    s,
		windowDays: windowDays,
		logger:     l.With("component", "AccountHandler"),
	}
}

func getAccountIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "accountID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: accountID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid accountID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// authorizeAccountAccess rejects customer-role sessions reading anyone
// else's account. Admin sessions and disabled auth pass through.
func authorizeAccountAccess(r *http.Request, accountID int64) error {
	p := middleware.PrincipalFromContext(r.Context())
	if p == nil || p.Role == middleware.RoleAdmin {
		return nil
	}
	if p.AccountID != accountID {
		return fmt.Errorf("%w: session is not scoped to account %d", apperrors.ErrForbidden, accountID)
	}
	return nil
}

func isCustomerSession(r *http.Request) bool {
	p := middleware.PrincipalFromContext(r.Context())
	return p != nil && p.Role == middleware.RoleCustomer
}

// CreateAccount handles POST /accounts
// @Summary Create a new account
// @Description Creates a new subscriber account with plan and billing details.
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body dto.AccountRequest true "Account creation request"
// @Success 201 {object} dto.AccountResponse "Account successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload (e.g., empty name)"
// @Failure 500 {object} dto.ErrorResponse "Internal server error during creation"
// @Router /accounts [post]
// @Security BearerAuth
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create account request")

	var req dto.AccountRequest
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

	acct, err := h.service.CreateAccount(r.Context(), req.ToParams())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to create account", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewAccountResponse(acct, false)
	h.logger.InfoContext(r.Context(), "Account created successfully", slog.Int64("accountID", resp.AccountID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetAccount handles GET /accounts/{accountID}
// @Summary Retrieve account details
// @Description Retrieves a single account. Customer sessions may only read their own account, with contact fields redacted.
// @Tags Accounts
// @Produce json
// @Param accountID path int true "Account ID" Minimum(1)
// @Success 200 {object} dto.AccountResponse "Account details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid account ID format"
// @Failure 403 {object} dto.ErrorResponse "Session not scoped to this account"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts/{accountID} [get]
// @Security BearerAuth
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := getAccountIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get account ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if err := authorizeAccountAccess(r, accountID); err != nil {
		h.logger.WarnContext(r.Context(), "Account access denied", slog.Int64("accountID", accountID))
		respondError(w, err)
		return
	}

	acct, err := h.service.GetAccount(r.Context(), accountID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, account.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get account", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewAccountResponse(acct, isCustomerSession(r))
	h.logger.InfoContext(r.Context(), "Account retrieved successfully")
	respondJSON(w, http.StatusOK, resp)
}

// ListAccounts handles GET /accounts
// @Summary List accounts
// @Description Retrieves every account, ordered by ID. Pass sort=renewal to order by renewal date instead.
// @Tags Accounts
// @Produce json
// @Param sort query string false "Sort order, 'renewal' sorts by renewal date" Example(renewal)
// @Success 200 {array} dto.AccountResponse "List of accounts"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts [get]
// @Security BearerAuth
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received list accounts request")

	sortByRenewal := r.URL.Query().Get("sort") == "renewal"
	accounts, err := h.service.ListAccounts(r.Context(), sortByRenewal)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list accounts", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.AccountResponse, len(accounts))
	for i, acct := range accounts {
		resp[i] = dto.NewAccountResponse(acct, false)
	}

	h.logger.InfoContext(r.Context(), "Accounts listed successfully", slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}

// UpdateAccount handles PUT /accounts/{accountID}
// @Summary Update an account
// @Description Replaces every mutable field of an account with the request values.
// @Tags Accounts
// @Accept json
// @Produce json
// @Param accountID path int true "Account ID" Minimum(1)
// @Param request body dto.AccountRequest true "Full replacement payload"
// @Success 200 {object} dto.AccountResponse "Account successfully updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid account ID or request payload"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts/{accountID} [put]
// @Security BearerAuth
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := getAccountIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get account ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.AccountRequest
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

	acct, err := h.service.UpdateAccount(r.Context(), accountID, req.ToParams())
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, account.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update account", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewAccountResponse(acct, false)
	h.logger.InfoContext(r.Context(), "Account updated successfully", slog.Int64("accountID", accountID))
	respondJSON(w, http.StatusOK, resp)
}

// DeleteAccount handles DELETE /accounts/{accountID}
// @Summary Delete an account
// @Description Removes an account and its payment history. Deleting an unknown account still returns 204.
// @Tags Accounts
// @Produce json
// @Param accountID path int true "Account ID" Minimum(1)
// @Success 204 "Account deleted (or did not exist)"
// @Failure 400 {object} dto.ErrorResponse "Invalid account ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts/{accountID} [delete]
// @Security BearerAuth
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := getAccountIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get account ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if err := h.service.DeleteAccount(r.Context(), accountID); err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to delete account", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Account deleted successfully", slog.Int64("accountID", accountID))
	respondJSON(w, http.StatusNoContent, nil)
}

// ListRenewals handles GET /accounts/renewals
// @Summary List upcoming and past-due renewals
// @Description Buckets accounts into upcoming (within the configured window) and past-due renewal lists.
// @Tags Accounts
// @Produce json
// @Success 200 {object} dto.RenewalScheduleResponse "Renewal schedule"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts/renewals [get]
// @Security BearerAuth
func (h *AccountHandler) ListRenewals(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received list renewals request")

	schedule, err := h.service.ListRenewals(r.Context(), time.Now(), h.windowDays)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list renewals", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewRenewalScheduleResponse(schedule)
	h.logger.InfoContext(r.Context(), "Renewals listed successfully",
		slog.Int("upcoming", len(resp.Upcoming)), slog.Int("pastDue", len(resp.PastDue)))
	respondJSON(w, http.StatusOK, resp)
}

// TriggerRollover handles POST /accounts/rollover
// @Summary Run the billing rollover sweep now
// @Description Applies the 30-day billing rollover to every overdue account. Safe to call repeatedly; the sweep is idempotent within a day.
// @Tags Accounts
// @Produce json
// @Success 200 {object} dto.SweepResultResponse "Sweep summary"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /accounts/rollover [post]
// @Security BearerAuth
func (h *AccountHandler) TriggerRollover(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "Received manual rollover trigger")

	result, err := h.service.SweepOverdueAccounts(r.Context(), time.Now())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Rollover sweep failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewSweepResultResponse(result)
	h.logger.InfoContext(r.Context(), "Rollover sweep finished",
		slog.Int("rolledOver", resp.RolledOver), slog.Int("errors", resp.Errors))
	respondJSON(w, http.StatusOK, resp)
}
