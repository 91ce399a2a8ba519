package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"isp-ledger/internal/config"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Principal is the authenticated caller, carried in the request context.
// AccountID is only meaningful for the customer role.
type Principal struct {
	Role      string
	AccountID int64
}

type contextKey string

const principalKey contextKey = "principal"

// PrincipalFromContext returns the authenticated principal, or nil when
// auth is disabled or the request never passed AuthMiddleware.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}

func withPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// IssueToken signs a session token for the given principal.
func IssueToken(cfg config.AuthConfig, p Principal) (string, time.Time, error) {
	expiresAt := time.Now().Add(cfg.TokenTTL)
	claims := jwt.MapClaims{
		"role": p.Role,
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	}
	if p.Role == RoleCustomer {
		claims["accountId"] = p.AccountID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// AuthMiddleware validates the bearer token and stores the resulting
// principal in the request context. When auth is disabled every request
// passes through with no principal, which downstream treats as admin.
func AuthMiddleware(cfg config.AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := validateJWT(r, cfg.JWTSecret, logger)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal)))
		})
	}
}

// RequireAdmin rejects customer-role principals. Requests with no principal
// pass; that only happens when auth is disabled.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := PrincipalFromContext(r.Context())
		if p != nil && p.Role != RoleAdmin {
			writeAuthError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func validateJWT(r *http.Request, secret string, logger *slog.Logger) (*Principal, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		logger.Warn("AuthMiddleware: Missing Authorization header")
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		logger.Warn("AuthMiddleware: Invalid Authorization header format")
		return nil, false
	}
	tokenString := parts[1]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			logger.Warn("AuthMiddleware: Unexpected signing method")
			return nil, http.ErrAbortHandler
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		logger.Warn("AuthMiddleware: Invalid token", "error", err)
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		logger.Warn("AuthMiddleware: Unexpected claims type")
		return nil, false
	}

	role, _ := claims["role"].(string)
	if role != RoleAdmin && role != RoleCustomer {
		logger.Warn("AuthMiddleware: Token carries unknown role", "role", role)
		return nil, false
	}

	principal := &Principal{Role: role}
	if role == RoleCustomer {
		accountID, ok := claims["accountId"].(float64)
		if !ok || accountID <= 0 {
			logger.Warn("AuthMiddleware: Customer token missing accountId claim")
			return nil, false
		}
		principal.AccountID = int64(accountID)
	}

	return principal, true
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":{"message":%q}}`, message)
}
