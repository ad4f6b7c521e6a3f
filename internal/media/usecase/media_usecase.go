package usecase

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/syter/media/internal/database"
	apperrors "github.com/syter/media/internal/errors"
	"github.com/syter/media/internal/media/domain"
	"github.com/syter/media/internal/media/filestore"
	tokenDomain "github.com/syter/media/internal/token/domain"
)

// Pagination defaults and bounds for ByToken.
const (
	defaultPageNumber = 1
	defaultPageSize   = 10
	maxPageSize       = 100
)

// mediaUseCase implements UseCase over a metadata repository and a blob store,
// with a transaction manager tying the two together for upload and delete.
type mediaUseCase struct {
	mediaRepo MediaItemRepository
	blobs     BlobStore
	roles     RolesProvider
	txManager database.TxManager
	policy    UploadPolicy
}

// NewMediaUseCase creates a new media lifecycle manager.
func NewMediaUseCase(
	mediaRepo MediaItemRepository,
	blobs BlobStore,
	roles RolesProvider,
	txManager database.TxManager,
	policy UploadPolicy,
) UseCase {
	return &mediaUseCase{
		mediaRepo: mediaRepo,
		blobs:     blobs,
		roles:     roles,
		txManager: txManager,
		policy:    policy,
	}
}

// Upload stores the file content and the metadata row as a unit.
//
// The file write happens inside the transaction scope so a failed insert
// triggers both the rollback and the blob compensation. The compensation
// tolerates a missing directory, covering the case where the write itself was
// the failing step.
func (m *mediaUseCase) Upload(
	ctx context.Context,
	actingToken string,
	input *domain.UploadInput,
) (uuid.UUID, error) {
	if err := m.validateUpload(input); err != nil {
		return uuid.Nil, err
	}

	roles, err := m.roles.GetRoles(ctx, actingToken)
	if err != nil {
		return uuid.Nil, err
	}
	if !roles.Has(tokenDomain.CanCreate) {
		return uuid.Nil, apperrors.Wrap(
			apperrors.ErrUnauthorized,
			"token does not have permission to create media items",
		)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, apperrors.Wrap(err, "failed to generate media item id")
	}

	item := &domain.MediaItem{
		ID:             id,
		CreatedByToken: actingToken,
		Title:          input.Title,
		Description:    input.Description,
		CreatedOn:      time.Now().UTC(),
	}

	err = m.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := m.blobs.Save(id, input.FileName, input.File, input.FileSize); err != nil {
			return err
		}
		return m.mediaRepo.Create(txCtx, item)
	})
	if err != nil {
		// Best effort cleanup. The original failure is what the caller needs
		// to see, not a secondary removal problem.
		_ = m.blobs.RemoveIfExists(id)
		return uuid.Nil, err
	}

	return id, nil
}

// PreviewStream opens a preview stream for the item. The metadata row gates
// access: no row, no content, even if a stray directory exists on disk.
func (m *mediaUseCase) PreviewStream(ctx context.Context, id uuid.UUID) (*filestore.Download, error) {
	if _, err := m.mediaRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	return m.blobs.Preview(id)
}

// DownloadStream opens a download for the item's content.
func (m *mediaUseCase) DownloadStream(ctx context.Context, id uuid.UUID) (*filestore.Download, error) {
	if _, err := m.mediaRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	return m.blobs.GetDownload(id)
}

// GetInfo returns the metadata view of the item.
func (m *mediaUseCase) GetInfo(ctx context.Context, id uuid.UUID) (*domain.MediaItemInfo, error) {
	item, err := m.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.MediaItemInfo{
		ID:             item.ID,
		CreatedByToken: item.CreatedByToken,
		Title:          item.Title,
		Description:    item.Description,
	}, nil
}

// ByToken pages through the items owned by token in creation order ascending.
// Out-of-range paging parameters are clamped rather than rejected.
func (m *mediaUseCase) ByToken(
	ctx context.Context,
	token string,
	page, pageSize int,
) (*domain.Page, error) {
	if page < 1 {
		page = defaultPageNumber
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	total, err := m.mediaRepo.CountByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	items, err := m.mediaRepo.ListByToken(ctx, token, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := (total + pageSize - 1) / pageSize

	return &domain.Page{
		Items:      items,
		PageNumber: page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// Delete removes the item's metadata row and its file content as a unit.
//
// The row delete and the folder delete run inside one transaction so a folder
// failure rolls the row back. The inverse does not hold: once the folder is
// gone it stays gone, the filesystem has no rollback.
func (m *mediaUseCase) Delete(ctx context.Context, id uuid.UUID, actingToken string) error {
	item, err := m.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	roles, err := m.roles.GetRoles(ctx, actingToken)
	if err != nil {
		return err
	}
	if !roles.Has(tokenDomain.CanDelete) {
		return apperrors.Wrap(
			apperrors.ErrUnauthorized,
			"token does not have permission to delete media items",
		)
	}
	if item.CreatedByToken != actingToken {
		return domain.ErrNotOwner
	}

	return m.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := m.mediaRepo.Delete(txCtx, id); err != nil {
			return err
		}
		return m.blobs.DeleteFolder(id)
	})
}

// Modify overwrites the item's title and description with the given values.
// Both fields are written on every call; a nil field clears the stored value.
func (m *mediaUseCase) Modify(
	ctx context.Context,
	id uuid.UUID,
	actingToken string,
	input *domain.ModifyInput,
) error {
	item, err := m.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	roles, err := m.roles.GetRoles(ctx, actingToken)
	if err != nil {
		return err
	}
	if !roles.Has(tokenDomain.CanModify) {
		return apperrors.Wrap(
			apperrors.ErrUnauthorized,
			"token does not have permission to modify media items",
		)
	}
	if item.CreatedByToken != actingToken {
		return domain.ErrNotOwner
	}

	item.Title = input.Title
	item.Description = input.Description
	now := time.Now().UTC()
	item.UpdatedOn = &now

	if err := m.mediaRepo.Update(ctx, item); err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseOperation, "could not update media item")
	}

	return nil
}

// validateUpload rejects payloads that are empty, over the size limit, or carry
// a blocked extension. Extension matching is case insensitive.
func (m *mediaUseCase) validateUpload(input *domain.UploadInput) error {
	if input.File == nil || input.FileSize == 0 {
		return domain.ErrFileNullOrEmpty
	}

	if m.policy.MaxFileSize > 0 && input.FileSize > m.policy.MaxFileSize {
		return apperrors.Wrapf(
			apperrors.ErrInvalidInput,
			"file exceeds the maximum allowed size of %d bytes",
			m.policy.MaxFileSize,
		)
	}

	ext := strings.ToLower(filepath.Ext(input.FileName))
	for _, blocked := range m.policy.BlockedExtensions {
		if ext == blocked {
			return apperrors.Wrapf(apperrors.ErrInvalidInput, "file extension '%s' is not allowed", ext)
		}
	}

	return nil
}
