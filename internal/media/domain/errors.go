package domain

import (
	"github.com/syter/media/internal/errors"
)

// Media domain errors.
var (
	// ErrMediaItemNotFound indicates the referenced media item does not exist.
	ErrMediaItemNotFound = errors.Wrap(errors.ErrNotFound, "media item not found")

	// ErrNotOwner indicates the acting token does not own the media item.
	// Ownership is an exact match on the stored owner token, not derived from
	// permissions.
	ErrNotOwner = errors.Wrap(
		errors.ErrUnauthorized,
		"the provided token does not own this media item",
	)

	// ErrFileNullOrEmpty indicates the upload carried no usable file payload.
	ErrFileNullOrEmpty = errors.Wrap(errors.ErrInvalidInput, "uploaded file is null or empty")
)
