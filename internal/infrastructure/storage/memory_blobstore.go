package storage

import (
	"context"
	"fmt"
	"sync"

	"coffee-grader/internal/domain/port"
)

// MemoryBlobStore keeps blobs in a map. Used in tests and dev runs
// without persistent storage.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryBlobStore creates an empty in-memory blob store.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{
		blobs: make(map[string][]byte),
	}
}

// Put stores data under key and returns a mem:// locator.
func (s *MemoryBlobStore) Put(ctx context.Context, key string, data []byte) (string, error) {
	s.mu.Lock()
	s.blobs[key] = append([]byte(nil), data...)
	s.mu.Unlock()

	return "mem://" + key, nil
}

// Get returns the blob stored under key.
func (s *MemoryBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.blobs[key]
	if !exists {
		return nil, fmt.Errorf("blob %s not found", key)
	}
	return append([]byte(nil), data...), nil
}

var _ port.BlobStore = (*MemoryBlobStore)(nil)
