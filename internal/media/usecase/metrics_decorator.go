package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/syter/media/internal/media/domain"
	"github.com/syter/media/internal/media/filestore"
	"github.com/syter/media/internal/metrics"
)

// mediaUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type mediaUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewMediaUseCaseWithMetrics wraps a media UseCase with metrics recording.
func NewMediaUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &mediaUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *mediaUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "media", operation, status)
	u.metrics.RecordDuration(ctx, "media", operation, time.Since(start), status)
}

// Upload records metrics for upload operations.
func (u *mediaUseCaseWithMetrics) Upload(
	ctx context.Context,
	actingToken string,
	input *domain.UploadInput,
) (uuid.UUID, error) {
	start := time.Now()
	id, err := u.next.Upload(ctx, actingToken, input)
	u.record(ctx, "upload", start, err)
	return id, err
}

// PreviewStream records metrics for preview operations.
func (u *mediaUseCaseWithMetrics) PreviewStream(ctx context.Context, id uuid.UUID) (*filestore.Download, error) {
	start := time.Now()
	download, err := u.next.PreviewStream(ctx, id)
	u.record(ctx, "preview", start, err)
	return download, err
}

// DownloadStream records metrics for download operations.
func (u *mediaUseCaseWithMetrics) DownloadStream(ctx context.Context, id uuid.UUID) (*filestore.Download, error) {
	start := time.Now()
	download, err := u.next.DownloadStream(ctx, id)
	u.record(ctx, "download", start, err)
	return download, err
}

// GetInfo records metrics for metadata lookups.
func (u *mediaUseCaseWithMetrics) GetInfo(ctx context.Context, id uuid.UUID) (*domain.MediaItemInfo, error) {
	start := time.Now()
	info, err := u.next.GetInfo(ctx, id)
	u.record(ctx, "get_info", start, err)
	return info, err
}

// ByToken records metrics for listing operations.
func (u *mediaUseCaseWithMetrics) ByToken(
	ctx context.Context,
	token string,
	page, pageSize int,
) (*domain.Page, error) {
	start := time.Now()
	result, err := u.next.ByToken(ctx, token, page, pageSize)
	u.record(ctx, "by_token", start, err)
	return result, err
}

// Delete records metrics for delete operations.
func (u *mediaUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID, actingToken string) error {
	start := time.Now()
	err := u.next.Delete(ctx, id, actingToken)
	u.record(ctx, "delete", start, err)
	return err
}

// Modify records metrics for metadata modification operations.
func (u *mediaUseCaseWithMetrics) Modify(
	ctx context.Context,
	id uuid.UUID,
	actingToken string,
	input *domain.ModifyInput,
) error {
	start := time.Now()
	err := u.next.Modify(ctx, id, actingToken, input)
	u.record(ctx, "modify", start, err)
	return err
}
