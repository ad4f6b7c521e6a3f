// Package domain defines the media item model: a relational metadata record
// paired 1:1 with a file stored on disk.
package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// MediaItem is the metadata record of one stored media file. Items are owned
// by the token that uploaded them and are removed when that token's row is
// deleted (ownership cascade in the schema).
type MediaItem struct {
	ID             uuid.UUID
	CreatedByToken string
	Title          *string // optional, cleared by an explicit modify
	Description    *string // optional, cleared by an explicit modify
	CreatedOn      time.Time
	UpdatedOn      *time.Time
}

// UploadInput carries the parameters for uploading a media item. File and
// FileSize come from the request-binding layer's payload abstraction.
type UploadInput struct {
	Title       *string
	Description *string
	FileName    string
	File        io.Reader
	FileSize    int64
}

// ModifyInput carries the replacement metadata for a modify request.
// A nil field clears the stored value.
type ModifyInput struct {
	Title       *string
	Description *string
}

// MediaItemInfo is the metadata view returned by info lookups.
type MediaItemInfo struct {
	ID             uuid.UUID
	CreatedByToken string
	Title          *string
	Description    *string
}

// Page is one slice of a token's items in creation order, together with the
// pagination totals.
type Page struct {
	Items      []*MediaItem
	PageNumber int
	PageSize   int
	TotalItems int
	TotalPages int
}
