package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalResolver(t *testing.T, dir string) *Resolver {
	t.Helper()
	return NewResolver(NewMemoryStore(dir), BackendLocal, NewLocalUploader(), logrus.New())
}

func TestResolver_NoFile(t *testing.T) {
	t.Parallel()

	resolver := newLocalResolver(t, t.TempDir())

	_, err := resolver.Upload(context.Background(), nil, "clip.mp4")
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = resolver.Upload(context.Background(), bytes.NewReader([]byte("data")), "")
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestResolver_LocalUpload(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "uploads", "videos")
	resolver := newLocalResolver(t, dir)

	content := []byte("fake video bytes")
	result, err := resolver.Upload(context.Background(), bytes.NewReader(content), "clip.mp4")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "clip.mp4"), result.Path)
	assert.Empty(t, result.SecureURL)

	written, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Equal(t, content, written)
}

func TestResolver_LocalCreatesMissingDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "does", "not", "exist")
	resolver := newLocalResolver(t, dir)

	dest, err := resolver.ResolveDestination(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DestinationLocal, dest.Kind)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestResolver_LocalStripsClientDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	resolver := newLocalResolver(t, dir)

	result, err := resolver.Upload(context.Background(), bytes.NewReader([]byte("x")), "../../etc/clip.mp4")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "clip.mp4"), result.Path)
}

func TestResolver_CloudDestination(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(NewMemoryStore("consult-videos"), BackendS3, NewLocalUploader(), logrus.New())

	dest, err := resolver.ResolveDestination(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DestinationCloud, dest.Kind)
	assert.Equal(t, "consult-videos", dest.Folder)
}
