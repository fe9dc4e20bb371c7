package storage

import (
	"os"
	"path/filepath"
)

// BlobStorage stores opaque files by key. The avatar handler is the only
// consumer today; keeping it behind an interface means the API is not tied
// to a local disk layout.
type BlobStorage interface {
	Put(key string, data []byte) error
	Delete(key string) error
	// URL returns the public path clients use to fetch the blob.
	URL(key string) string
}

// LocalStorage keeps blobs as files under a single directory.
type LocalStorage struct {
	dir       string
	urlPrefix string
}

// NewLocalStorage creates the directory if needed.
func NewLocalStorage(dir, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{dir: dir, urlPrefix: urlPrefix}, nil
}

// Put writes the blob, replacing any previous content under the key.
func (s *LocalStorage) Put(key string, data []byte) error {
	return os.WriteFile(filepath.Join(s.dir, key), data, 0o644)
}

// Delete removes the blob. Deleting a missing key is not an error.
func (s *LocalStorage) Delete(key string) error {
	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// URL returns the public relative path for the key.
func (s *LocalStorage) URL(key string) string {
	return s.urlPrefix + "/" + key
}
