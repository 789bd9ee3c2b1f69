package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFSBlobStore_PutWritesFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFSBlobStore(dir, "")
	ctx := context.Background()

	url, err := s.Put(ctx, "uploads/det-1.jpg", []byte("jpeg"))
	require.NoError(t, err)
	require.Contains(t, url, "file://")

	data, err := os.ReadFile(filepath.Join(dir, "uploads", "det-1.jpg"))
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg"), data)
}

func TestFSBlobStore_PublicBaseURL(t *testing.T) {
	s := NewFSBlobStore(t.TempDir(), "http://localhost:8080/")

	url, err := s.Put(context.Background(), "annotated/det-1_annotated.jpg", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/files/annotated/det-1_annotated.jpg", url)
}

func TestFSBlobStore_Get(t *testing.T) {
	s := NewFSBlobStore(t.TempDir(), "")
	ctx := context.Background()

	_, err := s.Put(ctx, "summaries/det-2_summary.jpg", []byte("card"))
	require.NoError(t, err)

	data, err := s.Get(ctx, "summaries/det-2_summary.jpg")
	require.NoError(t, err)
	require.Equal(t, []byte("card"), data)

	_, err = s.Get(ctx, "missing.jpg")
	require.Error(t, err)
}
