package domain

import (
	"github.com/syter/media/internal/errors"
)

// Token domain errors.
var (
	// ErrTokenNotFound indicates the referenced token does not exist.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrTokenNameUsed indicates the requested token name is already taken.
	ErrTokenNameUsed = errors.Wrap(errors.ErrAlreadyUsed, "token name already used")

	// ErrMissingPermission indicates the acting token lacks a required capability.
	ErrMissingPermission = errors.Wrap(
		errors.ErrUnauthorized,
		"the provided token does not have the required permissions",
	)

	// ErrTokenDeactivated indicates the acting token has been deactivated.
	ErrTokenDeactivated = errors.Wrap(errors.ErrUnauthorized, "token is deactivated")

	// ErrTokenExpired indicates the acting token is past its expiry.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token is expired")
)
