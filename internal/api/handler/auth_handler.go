package handler

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"

	"isp-ledger/internal/api/handler/dto"
	"isp-ledger/internal/api/middleware"
	"isp-ledger/internal/config"
	"isp-ledger/internal/pkg/apperrors"
)

type AuthHandler struct {
	cfg    config.AuthConfig
	logger *slog.Logger
}

func NewAuthHandler(cfg config.AuthConfig, l *slog.Logger) *AuthHandler {
	return &AuthHandler{
		cfg:    cfg,
		logger: l.With("component", "AuthHandler"),
	}
}

// GenerateBearerToken handles POST /auth/token
//
// @Summary Exchange the shared secret for a session token
// @Description Exchanges the office shared secret for a signed bearer token. With an accountId the token is scoped to that account (customer role); without one it carries full staff access (admin role).
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Shared secret, optionally with an account scope"
// @Success 200 {object} dto.TokenResponse "Token successfully generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Wrong shared secret"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/token [post]
func (h *AuthHandler) GenerateBearerToken(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "Generating bearer token")

	var req dto.TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if req.Secret == "" {
		h.logger.WarnContext(r.Context(), "Token request missing secret")
		respondError(w, fmt.Errorf("%w: secret is required", apperrors.ErrInvalidArgument))
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.cfg.SharedSecret)) != 1 {
		h.logger.WarnContext(r.Context(), "Token request with wrong shared secret")
		respondError(w, apperrors.ErrUnauthorized)
		return
	}
	if req.AccountID < 0 {
		h.logger.WarnContext(r.Context(), "Token request with negative account ID")
		respondError(w, fmt.Errorf("%w: accountId must be positive", apperrors.ErrInvalidArgument))
		return
	}

	principal := middleware.Principal{Role: middleware.RoleAdmin}
	if req.AccountID > 0 {
		principal = middleware.Principal{Role: middleware.RoleCustomer, AccountID: req.AccountID}
	}

	token, expiresAt, err := middleware.IssueToken(h.cfg, principal)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to sign session token", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Session token issued", slog.String("role", principal.Role))
	respondJSON(w, http.StatusOK, dto.TokenResponse{
		Token:     token,
		Role:      principal.Role,
		ExpiresAt: expiresAt,
	})
}
