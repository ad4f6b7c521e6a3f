// Package domain defines the authorization token model and its permission bitset.
//
// Tokens are opaque bearer credentials: the token string itself is the primary
// identity, generated from cryptographically random bytes at creation and never
// derived from user input. Capability checks combine Permission flags with
// bitwise OR.
package domain

import (
	"time"
)

// Permission is a combinable capability flag attached to a token.
type Permission int

// Capability flags. Combine with bitwise OR.
const (
	CanRead Permission = 1 << iota
	CanCreate
	CanDelete
	CanModify
	CanManagePermissions
)

// DefaultPermissions is the permission set granted to newly created tokens.
// CanManagePermissions is deliberately excluded and has to be granted by an
// administrator token.
const DefaultPermissions = CanRead | CanCreate | CanDelete | CanModify

// Has reports whether all flags in required are present in p.
func (p Permission) Has(required Permission) bool {
	return p&required == required
}

// AuthToken represents an authorization token with its permission bitset.
// Tokens are never physically deleted; deactivation is permanent.
type AuthToken struct {
	Token       string     // Opaque random identity, primary key
	Name        string     // Human label, unique across all tokens
	ExpiresAt   *time.Time // nil means the token never expires
	Permissions Permission
	IsActive    bool
	CreatedOn   time.Time
	UpdatedOn   *time.Time
}

// IsExpired reports whether the token's expiry, if any, lies before now.
func (t *AuthToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt != nil && t.ExpiresAt.Before(now)
}

// TokenInfo is the read-only view of a token returned by lookups. Liveness
// (activity and expiry) is evaluated by the consuming guard, not here.
type TokenInfo struct {
	Name        string
	ExpiresAt   *time.Time
	IsActive    bool
	Permissions Permission
}

// CreateTokenInput carries the parameters for creating a token.
type CreateTokenInput struct {
	Name      string
	ExpiresAt *time.Time
}

// CreateTokenOutput carries the freshly generated token string. It is only
// returned once, at creation.
type CreateTokenOutput struct {
	Token string
}
