package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/syter/media/internal/media/domain"
	"github.com/syter/media/internal/media/filestore"
	tokenDomain "github.com/syter/media/internal/token/domain"
)

// MediaItemRepository defines persistence operations for media item metadata.
type MediaItemRepository interface {
	// Create inserts a new media item record.
	Create(ctx context.Context, item *domain.MediaItem) error
	// GetByID retrieves a media item by its identifier.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MediaItem, error)
	// Update persists the mutable metadata of an existing media item.
	Update(ctx context.Context, item *domain.MediaItem) error
	// Delete removes the media item record.
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByToken returns the items owned by token in creation order ascending.
	ListByToken(ctx context.Context, token string, offset, limit int) ([]*domain.MediaItem, error)
	// CountByToken returns the total number of items owned by token.
	CountByToken(ctx context.Context, token string) (int, error)
}

// BlobStore defines the file side of an item: one sharded directory holding the
// uploaded content.
type BlobStore interface {
	// Save writes the file content under the item's directory.
	Save(id uuid.UUID, name string, src io.Reader, size int64) error
	// Preview opens the item's previewable content, substituting a fallback
	// image for non-previewable files.
	Preview(id uuid.UUID) (*filestore.Download, error)
	// GetDownload opens the item's content with its name and content type.
	GetDownload(id uuid.UUID) (*filestore.Download, error)
	// DeleteFolder removes the item's directory; missing directory is an error.
	DeleteFolder(id uuid.UUID) error
	// RemoveIfExists removes the item's directory; missing directory is fine.
	RemoveIfExists(id uuid.UUID) error
}

// RolesProvider resolves the permission bitset of an acting token.
type RolesProvider interface {
	GetRoles(ctx context.Context, token string) (tokenDomain.Permission, error)
}

// UploadPolicy bounds what an upload may carry.
type UploadPolicy struct {
	// MaxFileSize is the upper bound on the uploaded payload in bytes.
	MaxFileSize int64
	// BlockedExtensions are rejected extensions, lowercase with leading dot.
	BlockedExtensions []string
}

// UseCase defines the media item lifecycle operations.
type UseCase interface {
	// Upload stores the file content and its metadata record as a unit.
	Upload(ctx context.Context, actingToken string, input *domain.UploadInput) (uuid.UUID, error)
	// PreviewStream opens a preview stream for the item.
	PreviewStream(ctx context.Context, id uuid.UUID) (*filestore.Download, error)
	// DownloadStream opens a download for the item's content.
	DownloadStream(ctx context.Context, id uuid.UUID) (*filestore.Download, error)
	// GetInfo returns the metadata view of the item.
	GetInfo(ctx context.Context, id uuid.UUID) (*domain.MediaItemInfo, error)
	// ByToken pages through the items owned by token in creation order.
	ByToken(ctx context.Context, token string, page, pageSize int) (*domain.Page, error)
	// Delete removes the item's metadata record and file content as a unit.
	Delete(ctx context.Context, id uuid.UUID, actingToken string) error
	// Modify overwrites the item's title and description.
	Modify(ctx context.Context, id uuid.UUID, actingToken string, input *domain.ModifyInput) error
}
