// Package filestore owns the on-disk layout of media item content.
//
// Every item gets its own sharded directory derived from its identifier: the
// canonical hyphen-separated UUID form with each hyphen replaced by a path
// separator, nested under a configured root. This bounds directory fan-out
// instead of accumulating one giant flat directory.
package filestore

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/syter/media/internal/errors"
)

// mimeTypes maps file extensions to content types for downloads.
// Unrecognized extensions fall back to application/octet-stream.
var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".mp4":  "video/mp4",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".json": "application/json",
}

// previewableExtensions is the allow-list of extensions served as previews.
// Anything else is substituted by the fallback image.
var previewableExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Download bundles an open file stream with its name and content type.
// The caller owns the stream and must close it on every exit path.
type Download struct {
	Stream      io.ReadCloser
	FileName    string
	ContentType string
}

// FileStore stores media item content under a sharded directory layout.
type FileStore struct {
	root          string
	fallbackImage string
}

// New creates a FileStore rooted at root. fallbackImage is the file served
// when an item has no previewable content, resolved relative to root.
func New(root, fallbackImage string) *FileStore {
	return &FileStore{root: root, fallbackImage: fallbackImage}
}

// Save writes the file content under the item's sharded directory, keeping the
// original base name. The directory is created on demand. I/O failures are
// reported as invalid input ("access denied") rather than a fatal error; the
// caller is expected to catch and compensate.
func (s *FileStore) Save(id uuid.UUID, name string, src io.Reader, size int64) error {
	if src == nil || size == 0 {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "uploaded file is null or empty")
	}

	dir := s.itemDir(id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "access to the file denied")
	}

	path := filepath.Join(dir, filepath.Base(name))

	dst, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "access to the file denied")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "access to the file denied")
	}

	return nil
}

// FirstFile returns the path of the first file in the item's directory.
// A missing or empty directory resolves to the fallback image instead of failing.
func (s *FileStore) FirstFile(id uuid.UUID) string {
	entries, err := os.ReadDir(s.itemDir(id))
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				return filepath.Join(s.itemDir(id), entry.Name())
			}
		}
	}

	return filepath.Join(s.root, s.fallbackImage)
}

// Preview opens the item's file for reading if its extension is previewable,
// substituting the fallback image otherwise. Paths resolving outside the
// storage root are rejected as a path traversal attempt.
func (s *FileStore) Preview(id uuid.UUID) (*Download, error) {
	path := s.FirstFile(id)

	contained, err := s.isContained(path)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to resolve file path")
	}
	if !contained {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "access to the specified file is not allowed")
	}

	if !previewableExtensions[strings.ToLower(filepath.Ext(path))] {
		path = filepath.Join(s.root, s.fallbackImage)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "file not found")
	}

	return &Download{
		Stream:      file,
		FileName:    filepath.Base(path),
		ContentType: ContentTypeFor(path),
	}, nil
}

// GetDownload opens the item's file for reading and returns it together with
// its base name and a content type derived from the extension.
func (s *FileStore) GetDownload(id uuid.UUID) (*Download, error) {
	path := s.FirstFile(id)

	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrNotFound, "file not found")
	}

	return &Download{
		Stream:      file,
		FileName:    filepath.Base(path),
		ContentType: ContentTypeFor(path),
	}, nil
}

// DeleteFolder recursively deletes the item's directory and all contents.
// Fails with a not-found error when the directory does not exist.
func (s *FileStore) DeleteFolder(id uuid.UUID) error {
	dir := s.itemDir(id)

	if _, err := os.Stat(dir); err != nil {
		return apperrors.Wrap(apperrors.ErrNotFound, "file could not be deleted, it does not exist")
	}

	if err := os.RemoveAll(dir); err != nil {
		return apperrors.Wrap(err, "failed to delete item folder")
	}

	return nil
}

// RemoveIfExists deletes the item's directory when present. Missing content is
// not an error, which makes the call safe as an upload compensation step even
// when nothing was written.
func (s *FileStore) RemoveIfExists(id uuid.UUID) error {
	if err := os.RemoveAll(s.itemDir(id)); err != nil {
		return apperrors.Wrap(err, "failed to remove item folder")
	}
	return nil
}

// ContentTypeFor derives the content type of a file from its extension.
func ContentTypeFor(path string) string {
	if contentType, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return contentType
	}
	return "application/octet-stream"
}

// itemDir resolves the sharded directory of an item: the identifier's canonical
// textual form with hyphens replaced by path separators, nested under the root.
// Example: aaaa-bbbb-cccc maps to root/aaaa/bbbb/cccc.
func (s *FileStore) itemDir(id uuid.UUID) string {
	nested := strings.ReplaceAll(id.String(), "-", string(os.PathSeparator))
	return filepath.Join(s.root, nested)
}

// isContained reports whether path resolves inside the storage root.
func (s *FileStore) isContained(path string) (bool, error) {
	absRoot, err := filepath.Abs(s.root)
	if err != nil {
		return false, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}

	return strings.HasPrefix(absPath, absRoot+string(os.PathSeparator)), nil
}
