// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	mediaDomain "github.com/syter/media/internal/media/domain"
	"github.com/syter/media/internal/media/filestore"
)

// MockUseCase is a mock implementation of the media UseCase for testing.
type MockUseCase struct {
	mock.Mock
}

// Upload mocks the Upload method.
func (m *MockUseCase) Upload(
	ctx context.Context,
	actingToken string,
	input *mediaDomain.UploadInput,
) (uuid.UUID, error) {
	args := m.Called(ctx, actingToken, input)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// PreviewStream mocks the PreviewStream method.
func (m *MockUseCase) PreviewStream(ctx context.Context, id uuid.UUID) (*filestore.Download, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*filestore.Download), args.Error(1)
}

// DownloadStream mocks the DownloadStream method.
func (m *MockUseCase) DownloadStream(ctx context.Context, id uuid.UUID) (*filestore.Download, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*filestore.Download), args.Error(1)
}

// GetInfo mocks the GetInfo method.
func (m *MockUseCase) GetInfo(ctx context.Context, id uuid.UUID) (*mediaDomain.MediaItemInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mediaDomain.MediaItemInfo), args.Error(1)
}

// ByToken mocks the ByToken method.
func (m *MockUseCase) ByToken(
	ctx context.Context,
	token string,
	page, pageSize int,
) (*mediaDomain.Page, error) {
	args := m.Called(ctx, token, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mediaDomain.Page), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockUseCase) Delete(ctx context.Context, id uuid.UUID, actingToken string) error {
	args := m.Called(ctx, id, actingToken)
	return args.Error(0)
}

// Modify mocks the Modify method.
func (m *MockUseCase) Modify(
	ctx context.Context,
	id uuid.UUID,
	actingToken string,
	input *mediaDomain.ModifyInput,
) error {
	args := m.Called(ctx, id, actingToken, input)
	return args.Error(0)
}
