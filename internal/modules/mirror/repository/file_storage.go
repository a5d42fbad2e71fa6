package repository

import (
	"os"
	"path/filepath"

	"github.com/samber/oops"
)

// FileStorage implements mirror.Repository on a flat directory.
//
// There is deliberately no locking around Has/Store: two concurrent
// first-time mirrors of the same attachment may both fetch and write,
// but they write the same bytes to the same name.
type FileStorage struct {
	basePath string
}

// NewFileStorage creates the mirror directory if needed.
func NewFileStorage(basePath string) (Repository, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create mirror directory").Wrap(err)
	}

	return &FileStorage{basePath: basePath}, nil
}

func (s *FileStorage) Has(name string) bool {
	info, err := os.Stat(filepath.Join(s.basePath, name))
	return err == nil && !info.IsDir()
}

func (s *FileStorage) Store(name string, data []byte) error {
	path := filepath.Join(s.basePath, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return oops.With("path", path, "context", "failed to write mirrored file").Wrap(err)
	}
	return nil
}

func (s *FileStorage) BasePath() string {
	return s.basePath
}
