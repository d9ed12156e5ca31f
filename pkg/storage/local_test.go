package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{ n int }

func (r *failingReader) Read(p []byte) (int, error) {
	if r.n == 0 {
		return 0, errors.New("connection reset")
	}
	r.n--
	p[0] = 'x'
	return 1, nil
}

func TestLocal_SaveCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store := NewLocal(dir)

	err := store.Save(context.Background(), "media_a.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "media_a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocal_SaveRefusesOverwrite(t *testing.T) {
	store := NewLocal(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "media_a.png", strings.NewReader("first"), ""))
	assert.Error(t, store.Save(ctx, "media_a.png", strings.NewReader("second"), ""))
}

func TestLocal_SaveRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir)

	err := store.Save(context.Background(), "media_b.mp4", &failingReader{n: 3}, "video/mp4")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "media_b.mp4"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocal_RejectsPathNames(t *testing.T) {
	store := NewLocal(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "..", "../etc/passwd", "a/b.png", `a\b.png`} {
		assert.ErrorIs(t, store.Save(ctx, name, strings.NewReader("x"), ""), ErrInvalidName, name)
		assert.ErrorIs(t, store.Delete(ctx, name), ErrInvalidName, name)
	}
}

func TestLocal_Delete(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "media_c.gif", strings.NewReader("gif"), ""))
	require.NoError(t, store.Delete(ctx, "media_c.gif"))

	_, err := os.Stat(filepath.Join(dir, "media_c.gif"))
	assert.True(t, os.IsNotExist(err))

	// already gone
	assert.NoError(t, store.Delete(ctx, "media_c.gif"))
}

func TestNameFromPath(t *testing.T) {
	assert.Equal(t, "media_x.png", NameFromPath("uploads/media_x.png"))
	assert.Equal(t, "media_x.png", NameFromPath("media_x.png"))
}

func TestLocal_Path(t *testing.T) {
	store := NewLocal("/srv/uploads")

	path, err := store.Path("media_1.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/uploads", "media_1.png"), path)

	_, err = store.Path("../secret")
	assert.ErrorIs(t, err, ErrInvalidName)
}
