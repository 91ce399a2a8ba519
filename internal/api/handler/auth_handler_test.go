package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isp-ledger/internal/api/middleware"
	"isp-ledger/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Enabled:      true,
		SharedSecret: "office-secret",
		JWTSecret:    "signing-secret",
		TokenTTL:     time.Hour,
	}
}

func parseClaims(t *testing.T, tokenString string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("signing-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestGenerateBearerToken(t *testing.T) {
	t.Run("issues admin token for bare secret", func(t *testing.T) {
		h := NewAuthHandler(testAuthConfig(), testLogger)

		body := `{"secret":"office-secret"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		h.GenerateBearerToken(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, middleware.RoleAdmin, resp["role"])

		claims := parseClaims(t, resp["token"].(string))
		assert.Equal(t, middleware.RoleAdmin, claims["role"])
		_, hasAccount := claims["accountId"]
		assert.False(t, hasAccount)
	})

	t.Run("issues scoped customer token when accountId is given", func(t *testing.T) {
		h := NewAuthHandler(testAuthConfig(), testLogger)

		body := `{"secret":"office-secret","accountId":42}`
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		h.GenerateBearerToken(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, middleware.RoleCustomer, resp["role"])

		claims := parseClaims(t, resp["token"].(string))
		assert.Equal(t, middleware.RoleCustomer, claims["role"])
		assert.Equal(t, float64(42), claims["accountId"])
	})

	t.Run("rejects wrong secret with 401", func(t *testing.T) {
		h := NewAuthHandler(testAuthConfig(), testLogger)

		body := `{"secret":"not-the-secret"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		h.GenerateBearerToken(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects missing secret with 400", func(t *testing.T) {
		h := NewAuthHandler(testAuthConfig(), testLogger)

		body := `{}`
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		h.GenerateBearerToken(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects negative accountId with 400", func(t *testing.T) {
		h := NewAuthHandler(testAuthConfig(), testLogger)

		body := `{"secret":"office-secret","accountId":-5}`
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		h.GenerateBearerToken(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed body with 400", func(t *testing.T) {
		h := NewAuthHandler(testAuthConfig(), testLogger)

		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(`{"secret":`))
		rec := httptest.NewRecorder()

		h.GenerateBearerToken(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
