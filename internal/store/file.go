package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mysportsfeeds/mysportsfeeds-go/internal/codec"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/errors"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/feed"
)

// DefaultFileStoreDirectory is where feed payloads land when no
// directory is configured.
const DefaultFileStoreDirectory = "results"

// FileStore persists payloads as one file per cache key directly under
// a directory. Filesystem errors are fatal to the operation; unlike the
// blob store, nothing is absorbed.
type FileStore struct {
	dir         string
	initialized bool
}

// NewFileStore creates a file store rooted at dir. An empty dir selects
// DefaultFileStoreDirectory. The directory is created on first use.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultFileStoreDirectory
	}
	return &FileStore{dir: dir}
}

func (s *FileStore) init() error {
	if s.initialized {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrap(err, errors.KindStorage, "create store directory "+s.dir)
	}
	s.initialized = true
	return nil
}

// Exists implements Store.
func (s *FileStore) Exists(_ context.Context, req feed.Request) (bool, error) {
	if err := s.init(); err != nil {
		return false, err
	}
	_, err := os.Stat(s.path(req))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrap(err, errors.KindStorage, "stat "+s.path(req))
}

// Load implements Store.
func (s *FileStore) Load(_ context.Context, req feed.Request) (any, bool, error) {
	if err := s.init(); err != nil {
		return nil, false, err
	}
	f, err := os.Open(s.path(req))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, errors.KindStorage, "open "+s.path(req))
	}
	defer f.Close()

	data, err := codec.Decode(req.Format, f)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Store implements Store. The full encoded content is written in one
// exclusive open-write-close cycle; a failed write surfaces the
// filesystem error and may leave a truncated file behind.
func (s *FileStore) Store(_ context.Context, data any, req feed.Request) (string, error) {
	if err := s.init(); err != nil {
		return "", err
	}
	path := s.path(req)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, errors.KindStorage, "create "+path)
	}
	if err := codec.Encode(data, req.Format, f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, errors.KindStorage, "close "+path)
	}
	return path, nil
}

func (s *FileStore) path(req feed.Request) string {
	return filepath.Join(s.dir, req.CacheKey())
}
