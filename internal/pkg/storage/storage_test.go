package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "photos/ab/x.txt", strings.NewReader("hello")))

	rc, err := s.Get(ctx, "photos/ab/x.txt")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	require.NoError(t, s.Delete(ctx, "photos/ab/x.txt"))
	_, err = s.Get(ctx, "photos/ab/x.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting twice is fine.
	assert.NoError(t, s.Delete(ctx, "photos/ab/x.txt"))
}

func TestLocalStorageStaysInsideRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewLocalStorage(root)
	require.NoError(t, err)

	// Cleaned against "/" so ../ cannot climb out.
	require.NoError(t, s.Save(ctx, "../../escape.txt", strings.NewReader("x")))
	rc, err := s.Get(ctx, "escape.txt")
	require.NoError(t, err)
	rc.Close()
}

func TestGenerateThumbnail(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 800, 400))
	img.Set(10, 10, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	p := NewImageProcessor()
	assert.True(t, p.IsImage(bytes.NewReader(buf.Bytes())))
	assert.False(t, p.IsImage(strings.NewReader("not an image")))

	thumb, err := p.GenerateThumbnail(bytes.NewReader(buf.Bytes()), 200, 200)
	require.NoError(t, err)

	decoded, _, err := image.Decode(thumb)
	require.NoError(t, err)
	assert.Equal(t, 200, decoded.Bounds().Dx())
	assert.Equal(t, 100, decoded.Bounds().Dy())
}
