// Package usecase implements the token authority: creation, lookup, deactivation,
// and permission management of authorization tokens.
package usecase

import (
	"context"

	tokenDomain "github.com/syter/media/internal/token/domain"
)

// AuthTokenRepository defines persistence operations for authorization tokens.
// Implementations must support transaction-aware operations via context propagation.
type AuthTokenRepository interface {
	// Create stores a new token. Returns ErrTokenNameUsed on a name collision.
	Create(ctx context.Context, token *tokenDomain.AuthToken) error

	// GetByToken retrieves a token by its token string.
	// Returns ErrTokenNotFound if not found.
	GetByToken(ctx context.Context, token string) (*tokenDomain.AuthToken, error)

	// NameExists reports whether a token with the given name already exists.
	NameExists(ctx context.Context, name string) (bool, error)

	// Update persists permission and activation changes of an existing token.
	Update(ctx context.Context, token *tokenDomain.AuthToken) error
}

// UseCase defines the token authority operations.
//
// The authority is a pure information and permission oracle: it never decides
// whether a token is currently usable. Liveness policy (activity and expiry)
// belongs to the guards consuming FindInfo.
type UseCase interface {
	// Create generates a new token under the given unique name.
	// Fails with ErrTokenNameUsed when the name is taken.
	Create(ctx context.Context, input *tokenDomain.CreateTokenInput) (*tokenDomain.CreateTokenOutput, error)

	// FindInfo returns the read-only view of a token.
	// Fails with ErrTokenNotFound when the token does not exist.
	FindInfo(ctx context.Context, token string) (*tokenDomain.TokenInfo, error)

	// Deactivate permanently deactivates a token. Deactivating an
	// already-inactive token succeeds; a never-existing token fails with
	// ErrTokenNotFound. A persistence failure after the successful lookup
	// surfaces as ErrDatabaseOperation.
	Deactivate(ctx context.Context, token string) error

	// GetRoles returns the permission bitset of a token.
	// Fails with ErrTokenNotFound when the token does not exist.
	GetRoles(ctx context.Context, token string) (tokenDomain.Permission, error)

	// ChangePermissions replaces the permission bitset of targetToken. The
	// acting token is resolved first and must hold CanManagePermissions,
	// otherwise ErrMissingPermission is returned regardless of the target's
	// validity.
	ChangePermissions(
		ctx context.Context,
		targetToken string,
		permissions tokenDomain.Permission,
		actingToken string,
	) error
}
