package dto

import "time"

type TokenRequest struct {
	Secret string `json:"secret"`

	// AccountID scopes the session to a single account. When present the
	// token carries the customer role; staff sessions omit it.
	AccountID int64 `json:"accountId,omitempty"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}
