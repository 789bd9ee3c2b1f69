package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coffee-grader/internal/domain/port"
)

// FSBlobStore writes blobs under a base directory. Keys may contain
// slashes; parent directories are created as needed.
type FSBlobStore struct {
	baseDir string
	baseURL string
}

// NewFSBlobStore creates a store rooted at baseDir. When baseURL is
// set, locators point at the HTTP file mount; otherwise they are
// file:// paths.
func NewFSBlobStore(baseDir, baseURL string) *FSBlobStore {
	return &FSBlobStore{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Put writes data to disk under key and returns its locator.
func (s *FSBlobStore) Put(ctx context.Context, key string, data []byte) (string, error) {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create blob directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob %s: %w", key, err)
	}
	return s.locator(key), nil
}

// Get reads the blob stored under key.
func (s *FSBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}
	return data, nil
}

// locator builds the public URL for key. The HTTP server mounts the
// base directory at /files/.
func (s *FSBlobStore) locator(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/files/" + key
	}
	return "file://" + filepath.ToSlash(filepath.Join(s.baseDir, key))
}

var _ port.BlobStore = (*FSBlobStore)(nil)
