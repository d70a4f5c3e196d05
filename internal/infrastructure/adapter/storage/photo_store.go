package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
	"github.com/chiahui-lin/savings365/internal/domain/port/persistence"
)

// FilesystemPhotoStore stores deposit photos as files in a single directory.
// References handed back to callers are bare file names, never paths.
type FilesystemPhotoStore struct {
	dir    string
	logger coreport.Logger
}

// NewFilesystemPhotoStore creates the store and its backing directory
func NewFilesystemPhotoStore(dir string, logger coreport.Logger) (*FilesystemPhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating photo directory %s: %w", dir, err)
	}
	return &FilesystemPhotoStore{dir: dir, logger: logger}, nil
}

var _ persistence.PhotoStore = (*FilesystemPhotoStore)(nil)

// Save writes the content under the given opaque name and returns the
// reference to store on the ledger row
func (s *FilesystemPhotoStore) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: creating photo file: %s", errs.ErrInternalServer, err.Error())
	}

	if _, err := io.Copy(file, content); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("%w: writing photo file: %s", errs.ErrInternalServer, err.Error())
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: closing photo file: %s", errs.ErrInternalServer, err.Error())
	}

	s.logger.Debug("Photo stored", map[string]any{
		"photo": name,
	})
	return name, nil
}

// Remove deletes the referenced file. Unknown references are a no-op: the
// row pointing at the file may outlive a partial cleanup.
func (s *FilesystemPhotoStore) Remove(ctx context.Context, reference string) error {
	if reference == "" {
		return nil
	}
	if err := validateName(reference); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.dir, reference))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: removing photo file: %s", errs.ErrInternalServer, err.Error())
	}
	return nil
}

// Path returns the filesystem path of a stored reference, for serving
func (s *FilesystemPhotoStore) Path(reference string) (string, error) {
	if err := validateName(reference); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, reference), nil
}

// validateName rejects references that could escape the storage directory
func validateName(name string) error {
	if name == "" ||
		strings.Contains(name, "/") ||
		strings.Contains(name, "\\") ||
		strings.Contains(name, "..") {
		return fmt.Errorf("%w: invalid photo reference", errs.ErrInternalServer)
	}
	return nil
}
