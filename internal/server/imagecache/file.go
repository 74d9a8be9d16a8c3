package imagecache

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/dmitrijs2005/streetsmarts/internal/filex"
)

// FilePathPrefix is the URL path under which the HTTP layer serves Dir.
const FilePathPrefix = "/cache/"

// FileStore keeps images in a local directory.
type FileStore struct {
	Dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &FileStore{Dir: abs}, nil
}

func (s *FileStore) Has(_ context.Context, name string) (bool, error) {
	return filex.Exists(s.path(name))
}

func (s *FileStore) Put(_ context.Context, name string, data []byte, _ string) error {
	return filex.WriteFileAtomic(s.path(name), data, 0o644)
}

func (s *FileStore) URL(_ context.Context, name string) (string, error) {
	return FilePathPrefix + name, nil
}

func (s *FileStore) List(_ context.Context) ([]string, error) {
	names, err := filex.ListFiles(s.Dir)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.Dir, filepath.Base(name))
}
