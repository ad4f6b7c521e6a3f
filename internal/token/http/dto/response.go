package dto

import "time"

// CreateTokenResponse carries the freshly generated token. This is the only
// moment the token value is returned to the caller.
type CreateTokenResponse struct {
	Token string `json:"token"`
}

// TokenInfoResponse represents the read-only view of a token.
type TokenInfoResponse struct {
	Name        string     `json:"name"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	IsActive    bool       `json:"is_active"`
	Permissions int        `json:"permissions"`
}
