package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/syter/media/internal/errors"
	mediaDomain "github.com/syter/media/internal/media/domain"
	"github.com/syter/media/internal/media/filestore"
	tokenDomain "github.com/syter/media/internal/token/domain"
)

// MockMediaItemRepository is a mock implementation of MediaItemRepository.
type MockMediaItemRepository struct {
	mock.Mock
}

func (m *MockMediaItemRepository) Create(ctx context.Context, item *mediaDomain.MediaItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMediaItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*mediaDomain.MediaItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mediaDomain.MediaItem), args.Error(1)
}

func (m *MockMediaItemRepository) Update(ctx context.Context, item *mediaDomain.MediaItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMediaItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMediaItemRepository) ListByToken(
	ctx context.Context,
	token string,
	offset, limit int,
) ([]*mediaDomain.MediaItem, error) {
	args := m.Called(ctx, token, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mediaDomain.MediaItem), args.Error(1)
}

func (m *MockMediaItemRepository) CountByToken(ctx context.Context, token string) (int, error) {
	args := m.Called(ctx, token)
	return args.Int(0), args.Error(1)
}

// MockBlobStore is a mock implementation of BlobStore.
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Save(id uuid.UUID, name string, src io.Reader, size int64) error {
	args := m.Called(id, name, src, size)
	return args.Error(0)
}

func (m *MockBlobStore) Preview(id uuid.UUID) (*filestore.Download, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*filestore.Download), args.Error(1)
}

func (m *MockBlobStore) GetDownload(id uuid.UUID) (*filestore.Download, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*filestore.Download), args.Error(1)
}

func (m *MockBlobStore) DeleteFolder(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockBlobStore) RemoveIfExists(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockRolesProvider is a mock implementation of RolesProvider.
type MockRolesProvider struct {
	mock.Mock
}

func (m *MockRolesProvider) GetRoles(ctx context.Context, token string) (tokenDomain.Permission, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(tokenDomain.Permission), args.Error(1)
}

// passthroughTxManager runs the function without a real transaction, which is
// all these tests need to observe rollback propagation.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type useCaseFixture struct {
	repo  *MockMediaItemRepository
	blobs *MockBlobStore
	roles *MockRolesProvider
	uc    UseCase
}

func newFixture() *useCaseFixture {
	repo := &MockMediaItemRepository{}
	blobs := &MockBlobStore{}
	roles := &MockRolesProvider{}
	policy := UploadPolicy{
		MaxFileSize:       1024,
		BlockedExtensions: []string{".exe", ".bat", ".sh", ".dll"},
	}

	return &useCaseFixture{
		repo:  repo,
		blobs: blobs,
		roles: roles,
		uc:    NewMediaUseCase(repo, blobs, roles, passthroughTxManager{}, policy),
	}
}

func uploadInput(name, content string) *mediaDomain.UploadInput {
	title := "title"
	return &mediaDomain.UploadInput{
		Title:    &title,
		FileName: name,
		File:     strings.NewReader(content),
		FileSize: int64(len(content)),
	}
}

func TestMediaUseCase_Upload_Success(t *testing.T) {
	f := newFixture()

	f.roles.On("GetRoles", mock.Anything, "tok-1").Return(tokenDomain.DefaultPermissions, nil)
	f.blobs.On("Save", mock.Anything, "photo.jpg", mock.Anything, int64(4)).Return(nil)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(item *mediaDomain.MediaItem) bool {
		return item.CreatedByToken == "tok-1" &&
			item.ID != uuid.Nil &&
			!item.CreatedOn.IsZero()
	})).Return(nil)

	id, err := f.uc.Upload(context.Background(), "tok-1", uploadInput("photo.jpg", "abcd"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	f.repo.AssertExpectations(t)
	f.blobs.AssertExpectations(t)
}

func TestMediaUseCase_Upload_EmptyFile(t *testing.T) {
	f := newFixture()

	input := uploadInput("photo.jpg", "")

	_, err := f.uc.Upload(context.Background(), "tok-1", input)
	assert.ErrorIs(t, err, mediaDomain.ErrFileNullOrEmpty)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMediaUseCase_Upload_FileTooLarge(t *testing.T) {
	f := newFixture()

	input := uploadInput("big.bin", "x")
	input.FileSize = 2048

	_, err := f.uc.Upload(context.Background(), "tok-1", input)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestMediaUseCase_Upload_BlockedExtension(t *testing.T) {
	f := newFixture()

	for _, name := range []string{"malware.exe", "MALWARE.EXE", "script.Sh"} {
		_, err := f.uc.Upload(context.Background(), "tok-1", uploadInput(name, "abcd"))
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput), "extension of %s must be rejected", name)
	}
}

func TestMediaUseCase_Upload_MissingCreatePermission(t *testing.T) {
	f := newFixture()

	f.roles.On("GetRoles", mock.Anything, "tok-1").Return(tokenDomain.CanRead, nil)

	_, err := f.uc.Upload(context.Background(), "tok-1", uploadInput("photo.jpg", "abcd"))
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	f.blobs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMediaUseCase_Upload_InsertFailureCompensatesBlob(t *testing.T) {
	f := newFixture()
	insertErr := errors.New("insert failed")

	f.roles.On("GetRoles", mock.Anything, "tok-1").Return(tokenDomain.DefaultPermissions, nil)
	f.blobs.On("Save", mock.Anything, "photo.jpg", mock.Anything, int64(4)).Return(nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(insertErr)
	f.blobs.On("RemoveIfExists", mock.Anything).Return(nil)

	_, err := f.uc.Upload(context.Background(), "tok-1", uploadInput("photo.jpg", "abcd"))
	assert.ErrorIs(t, err, insertErr)

	f.blobs.AssertCalled(t, "RemoveIfExists", mock.Anything)
}

func TestMediaUseCase_Upload_SaveFailureSkipsInsert(t *testing.T) {
	f := newFixture()
	saveErr := apperrors.Wrap(apperrors.ErrInvalidInput, "access to the file denied")

	f.roles.On("GetRoles", mock.Anything, "tok-1").Return(tokenDomain.DefaultPermissions, nil)
	f.blobs.On("Save", mock.Anything, "photo.jpg", mock.Anything, int64(4)).Return(saveErr)
	f.blobs.On("RemoveIfExists", mock.Anything).Return(nil)

	_, err := f.uc.Upload(context.Background(), "tok-1", uploadInput("photo.jpg", "abcd"))
	assert.ErrorIs(t, err, saveErr)

	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMediaUseCase_PreviewStream_RequiresMetadataRow(t *testing.T) {
	f := newFixture()
	id, _ := uuid.NewV7()

	f.repo.On("GetByID", mock.Anything, id).Return(nil, mediaDomain.ErrMediaItemNotFound)

	preview, err := f.uc.PreviewStream(context.Background(), id)
	assert.Nil(t, preview)
	assert.ErrorIs(t, err, mediaDomain.ErrMediaItemNotFound)
	f.blobs.AssertNotCalled(t, "Preview", mock.Anything)
}

func TestMediaUseCase_PreviewStream(t *testing.T) {
	f := newFixture()
	id, _ := uuid.NewV7()
	item := &mediaDomain.MediaItem{ID: id, CreatedByToken: "tok-1"}

	f.repo.On("GetByID", mock.Anything, id).Return(item, nil)
	f.blobs.On("Preview", id).Return(&filestore.Download{
		Stream:      io.NopCloser(strings.NewReader("png-bytes")),
		FileName:    "photo.png",
		ContentType: "image/png",
	}, nil)

	preview, err := f.uc.PreviewStream(context.Background(), id)
	require.NoError(t, err)
	defer preview.Stream.Close()

	data, err := io.ReadAll(preview.Stream)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", preview.ContentType)
}

func TestMediaUseCase_DownloadStream(t *testing.T) {
	f := newFixture()
	id, _ := uuid.NewV7()
	item := &mediaDomain.MediaItem{ID: id, CreatedByToken: "tok-1"}

	f.repo.On("GetByID", mock.Anything, id).Return(item, nil)
	f.blobs.On("GetDownload", id).Return(&filestore.Download{
		Stream:      io.NopCloser(strings.NewReader("data")),
		FileName:    "photo.jpg",
		ContentType: "image/jpeg",
	}, nil)

	download, err := f.uc.DownloadStream(context.Background(), id)
	require.NoError(t, err)
	defer download.Stream.Close()

	assert.Equal(t, "photo.jpg", download.FileName)
	assert.Equal(t, "image/jpeg", download.ContentType)
}

func TestMediaUseCase_GetInfo(t *testing.T) {
	f := newFixture()
	id, _ := uuid.NewV7()
	title := "holiday photo"
	item := &mediaDomain.MediaItem{ID: id, CreatedByToken: "tok-1", Title: &title}

	f.repo.On("GetByID", mock.Anything, id).Return(item, nil)

	info, err := f.uc.GetInfo(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, info.ID)
	assert.Equal(t, "tok-1", info.CreatedByToken)
	assert.Equal(t, "holiday photo", *info.Title)
	assert.Nil(t, info.Description)
}

func TestMediaUseCase_ByToken_Pagination(t *testing.T) {
	tests := []struct {
		name           string
		page, pageSize int
		expectedOffset int
		expectedLimit  int
		expectedPage   int
	}{
		{"defaults applied", 0, 0, 0, 10, 1},
		{"negative page clamped", -3, 5, 0, 5, 1},
		{"page size capped", 2, 500, 100, 100, 2},
		{"second page offset", 2, 10, 10, 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			f.repo.On("CountByToken", mock.Anything, "tok-1").Return(25, nil)
			f.repo.On("ListByToken", mock.Anything, "tok-1", tt.expectedOffset, tt.expectedLimit).
				Return([]*mediaDomain.MediaItem{}, nil)

			page, err := f.uc.ByToken(context.Background(), "tok-1", tt.page, tt.pageSize)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedPage, page.PageNumber)
			assert.Equal(t, tt.expectedLimit, page.PageSize)
			assert.Equal(t, 25, page.TotalItems)
			f.repo.AssertExpectations(t)
		})
	}
}

func TestMediaUseCase_ByToken_TotalPagesRoundsUp(t *testing.T) {
	f := newFixture()

	f.repo.On("CountByToken", mock.Anything, "tok-1").Return(21, nil)
	f.repo.On("ListByToken", mock.Anything, "tok-1", 0, 10).
		Return([]*mediaDomain.MediaItem{}, nil)

	page, err := f.uc.ByToken(context.Background(), "tok-1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
}

func TestMediaUseCase_Delete_Success(t *testing.T) {
	f := newFixture()
	id, _ := uuid.NewV7()
	item := &mediaDomain.MediaItem{ID: id, CreatedByToken: "tok-1"}

	f.repo.On("GetByID", mock.Anything, id).Return(item, nil)
	f.roles.On("GetRoles", mock.Anything, "tok-1").Return(tokenDomain.DefaultPermissions, nil)
	f.repo.On("Delete", mock.Anything, id).Return(nil)
	f.blobs.On("DeleteFolder", id).Return(nil)

	err := f.uc.Delete(context.Background(), id, "tok-1")
	assert.NoError(t, err)
	f.repo.AssertExpectations(t)
	f.blobs.AssertExpectations(t)
}

func TestMediaUseCase_Delete_NotOwner(t *testing.T) {
	f := newFixture()
	id, _ := uuid.NewV7()
	item := &mediaDomain.MediaItem{ID: id, CreatedByToken: "tok-owner"}

	f.repo.On("GetByID", mock.Anything, id).Return(item, nil)
	f.roles.On("GetRoles", mock.Anything, "tok-other").Return(tokenDomain.DefaultPermissions, nil)

	err := f.uc.Delete(context.Background(), id, "tok-other")
	assert.ErrorIs(t, err, mediaDomain.ErrNotOwner)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestMediaUseCase_Delete_MissingPermission(t *testing.T) {
	f := newFixture()
	id, _ := uuid.NewV7()
	item := &mediaDomain.MediaItem{ID: id, CreatedByToken: "tok-1"}

	f.repo.On("GetByID", mock.Anything, id).Return(item, nil)
	f.roles.On("GetRoles", mock.Anything, "tok-1").Return(tokenDomain.CanRead, nil)

	err := f.uc.Delete(context.Background(), id, "tok-1")
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestMediaUseCase_Delete_FolderFailurePropagates(t *testing.T) {
	f := newFixture()
	id, _ := uuid.NewV7()
	item := &mediaDomain.MediaItem{ID: id, CreatedByToken: "tok-1"}
	folderErr := apperrors.Wrap(apperrors.ErrNotFound, "file could not be deleted, it does not exist")

	f.repo.On("GetByID", mock.Anything, id).Return(item, nil)
	f.roles.On("GetRoles", mock.Anything, "tok-1").Return(tokenDomain.DefaultPermissions, nil)
	f.repo.On("Delete", mock.Anything, id).Return(nil)
	f.blobs.On("DeleteFolder", id).Return(folderErr)

	err := f.uc.Delete(context.Background(), id, "tok-1")
	assert.ErrorIs(t, err, folderErr)
}

func TestMediaUseCase_Modify_OverwritesBothFields(t *testing.T) {
	f := newFixture()
	id, _ := uuid.NewV7()
	oldTitle := "old title"
	oldDescription := "old description"
	item := &mediaDomain.MediaItem{
		ID:             id,
		CreatedByToken: "tok-1",
		Title:          &oldTitle,
		Description:    &oldDescription,
	}
	newTitle := "new title"

	f.repo.On("GetByID", mock.Anything, id).Return(item, nil)
	f.roles.On("GetRoles", mock.Anything, "tok-1").Return(tokenDomain.DefaultPermissions, nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(updated *mediaDomain.MediaItem) bool {
		return updated.Title != nil && *updated.Title == "new title" &&
			updated.Description == nil &&
			updated.UpdatedOn != nil
	})).Return(nil)

	// Description omitted: the field is cleared, not preserved.
	err := f.uc.Modify(context.Background(), id, "tok-1", &mediaDomain.ModifyInput{Title: &newTitle})
	assert.NoError(t, err)
	f.repo.AssertExpectations(t)
}

func TestMediaUseCase_Modify_MissingPermission(t *testing.T) {
	f := newFixture()
	id, _ := uuid.NewV7()
	item := &mediaDomain.MediaItem{ID: id, CreatedByToken: "tok-1"}

	f.repo.On("GetByID", mock.Anything, id).Return(item, nil)
	f.roles.On("GetRoles", mock.Anything, "tok-1").
		Return(tokenDomain.CanRead|tokenDomain.CanCreate, nil)

	err := f.uc.Modify(context.Background(), id, "tok-1", &mediaDomain.ModifyInput{})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestMediaUseCase_Modify_PersistenceFailure(t *testing.T) {
	f := newFixture()
	id, _ := uuid.NewV7()
	item := &mediaDomain.MediaItem{ID: id, CreatedByToken: "tok-1"}

	f.repo.On("GetByID", mock.Anything, id).Return(item, nil)
	f.roles.On("GetRoles", mock.Anything, "tok-1").Return(tokenDomain.DefaultPermissions, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	err := f.uc.Modify(context.Background(), id, "tok-1", &mediaDomain.ModifyInput{})
	assert.True(t, apperrors.Is(err, apperrors.ErrDatabaseOperation))
}
