package port

import "context"

// BlobStore persists image blobs under string keys and returns a URL
// the stored blob can later be fetched from.
type BlobStore interface {
	// Put stores data under key and returns its public locator.
	Put(ctx context.Context, key string, data []byte) (string, error)

	// Get returns the blob stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
}
