package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	apperrors "github.com/syter/media/internal/errors"
	tokenDomain "github.com/syter/media/internal/token/domain"
)

// tokenByteLength is the amount of random bytes backing a token identity.
const tokenByteLength = 64

// tokenUseCase implements UseCase on top of an AuthTokenRepository.
type tokenUseCase struct {
	tokenRepo AuthTokenRepository
}

// NewTokenUseCase creates a new token authority backed by the given repository.
func NewTokenUseCase(tokenRepo AuthTokenRepository) UseCase {
	return &tokenUseCase{tokenRepo: tokenRepo}
}

// Create generates a new token under the given unique name.
//
// The name collision check runs before the insert; the unique constraint on the
// name column backs it up, so a concurrent insert between check and insert still
// surfaces as ErrTokenNameUsed rather than a generic failure. New tokens carry
// the full default permission set and are active.
func (t *tokenUseCase) Create(
	ctx context.Context,
	input *tokenDomain.CreateTokenInput,
) (*tokenDomain.CreateTokenOutput, error) {
	used, err := t.tokenRepo.NameExists(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, apperrors.Wrapf(tokenDomain.ErrTokenNameUsed, "token name '%s'", input.Name)
	}

	token, err := generateSecureToken()
	if err != nil {
		return nil, err
	}

	authToken := &tokenDomain.AuthToken{
		Token:       token,
		Name:        input.Name,
		ExpiresAt:   input.ExpiresAt,
		Permissions: tokenDomain.DefaultPermissions,
		IsActive:    true,
		CreatedOn:   time.Now().UTC(),
	}

	if err := t.tokenRepo.Create(ctx, authToken); err != nil {
		return nil, err
	}

	return &tokenDomain.CreateTokenOutput{Token: token}, nil
}

// FindInfo returns the read-only view of a token. It never mutates activity or
// expiry state.
func (t *tokenUseCase) FindInfo(ctx context.Context, token string) (*tokenDomain.TokenInfo, error) {
	authToken, err := t.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return &tokenDomain.TokenInfo{
		Name:        authToken.Name,
		ExpiresAt:   authToken.ExpiresAt,
		IsActive:    authToken.IsActive,
		Permissions: authToken.Permissions,
	}, nil
}

// Deactivate permanently deactivates a token.
func (t *tokenUseCase) Deactivate(ctx context.Context, token string) error {
	authToken, err := t.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		return err
	}

	authToken.IsActive = false
	now := time.Now().UTC()
	authToken.UpdatedOn = &now

	if err := t.tokenRepo.Update(ctx, authToken); err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseOperation, "could not deactivate token")
	}

	return nil
}

// GetRoles returns the permission bitset of a token.
func (t *tokenUseCase) GetRoles(ctx context.Context, token string) (tokenDomain.Permission, error) {
	authToken, err := t.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		return 0, err
	}

	return authToken.Permissions, nil
}

// ChangePermissions replaces the permission bitset of targetToken.
//
// The acting token and target token are distinct concepts: a token can grant
// itself permissions only if it already holds CanManagePermissions.
func (t *tokenUseCase) ChangePermissions(
	ctx context.Context,
	targetToken string,
	permissions tokenDomain.Permission,
	actingToken string,
) error {
	roles, err := t.GetRoles(ctx, actingToken)
	if err != nil {
		return err
	}
	if !roles.Has(tokenDomain.CanManagePermissions) {
		return tokenDomain.ErrMissingPermission
	}

	authToken, err := t.tokenRepo.GetByToken(ctx, targetToken)
	if err != nil {
		return err
	}

	authToken.Permissions = permissions
	now := time.Now().UTC()
	authToken.UpdatedOn = &now

	if err := t.tokenRepo.Update(ctx, authToken); err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseOperation, "could not update token permissions")
	}

	return nil
}

// generateSecureToken randomly generates the opaque token identity:
// 64 cryptographically random bytes, base64 encoded.
func generateSecureToken() (string, error) {
	data := make([]byte, tokenByteLength)
	if _, err := rand.Read(data); err != nil {
		return "", apperrors.Wrap(err, "failed to generate random token")
	}

	return base64.URLEncoding.EncodeToString(data), nil
}
