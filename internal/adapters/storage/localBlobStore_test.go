package storage_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"contenthub/internal/adapters/storage"
	"contenthub/internal/core/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestStore_WritesImageUnderField(t *testing.T) {
	root := t.TempDir()
	store := storage.NewLocalBlobStore(root, 0, zap.NewNop())

	rel, err := store.Store(context.Background(), "content", "Photo.PNG", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "/uploads/content/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	onDisk := filepath.Join(root, strings.TrimPrefix(rel, "/uploads/"))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestStore_UniqueNames(t *testing.T) {
	store := storage.NewLocalBlobStore(t.TempDir(), 0, zap.NewNop())

	a, err := store.Store(context.Background(), "avatar", "a.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	b, err := store.Store(context.Background(), "avatar", "a.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestStore_ExtensionFollowsSniffedType(t *testing.T) {
	root := t.TempDir()
	store := storage.NewLocalBlobStore(root, 0, zap.NewNop())
	disguised := append(append([]byte{}, pngHeader...), []byte("<script>alert(1)</script>")...)

	cases := map[string]string{
		"x.html":    ".png",
		"x.svg":     ".png",
		"photo.jpg": ".png",
		"noext":     ".png",
		"pic.png":   ".png",
	}
	for filename, want := range cases {
		rel, err := store.Store(context.Background(), "content", filename, bytes.NewReader(disguised))
		require.NoError(t, err, filename)
		assert.Equal(t, want, filepath.Ext(rel), filename)
	}
}

func TestStore_RejectsNonImage(t *testing.T) {
	root := t.TempDir()
	store := storage.NewLocalBlobStore(root, 0, zap.NewNop())

	_, err := store.Store(context.Background(), "content", "notes.png", strings.NewReader("just some text"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrBadRequest))

	_, err = store.Store(context.Background(), "content", "empty.png", bytes.NewReader(nil))
	assert.True(t, errors.Is(err, errs.ErrBadRequest))

	entries, _ := os.ReadDir(filepath.Join(root, "content"))
	assert.Empty(t, entries)
}

func TestStore_EnforcesMaxBytes(t *testing.T) {
	root := t.TempDir()
	store := storage.NewLocalBlobStore(root, 32, zap.NewNop())

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	_, err := store.Store(context.Background(), "content", "big.png", bytes.NewReader(big))
	assert.True(t, errors.Is(err, errs.ErrBadRequest))

	entries, _ := os.ReadDir(filepath.Join(root, "content"))
	assert.Empty(t, entries)
}

func TestStore_RejectsPathLikeField(t *testing.T) {
	store := storage.NewLocalBlobStore(t.TempDir(), 0, zap.NewNop())
	_, err := store.Store(context.Background(), "../etc", "x.png", bytes.NewReader(pngHeader))
	assert.Error(t, err)
}
