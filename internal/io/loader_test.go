package io

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"mdna-viewer/internal/core"
)

func gray16(w, h int) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[img.PixOffset(x, y)] = byte(y)
			img.Pix[img.PixOffset(x, y)+1] = byte(x)
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func writeTIFF(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate}))
	return path
}

func newLoader() (*ImageLoader, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewImageLoader(NewNativeDecoder(), logger), hook
}

func TestLoadImagePNGAndTIFF(t *testing.T) {
	dir := t.TempDir()
	src := gray16(5, 4)
	loader, hook := newLoader()

	for _, path := range []string{
		writePNG(t, dir, "cy3.png", src),
		writeTIFF(t, dir, "cy3.tif", src),
	} {
		grid, err := loader.LoadImage(path)
		require.NoError(t, err, path)
		assert.Equal(t, 5, grid.Width)
		assert.Equal(t, 4, grid.Height)
		assert.Equal(t, path, grid.Path)
		assert.Equal(t, uint16(2<<8|3), grid.At(3, 2))
	}

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Channel image loaded", hook.LastEntry().Message)
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	loader, _ := newLoader()

	eight := writePNG(t, dir, "eight.png", image.NewGray(image.Rect(0, 0, 3, 3)))
	rgb := writePNG(t, dir, "rgb.png", image.NewRGBA64(image.Rect(0, 0, 3, 3)))
	garbage := filepath.Join(dir, "garbage.tif")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image at all"), 0o644))
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing file", filepath.Join(dir, "missing.tif"), core.ErrNotFound},
		{"directory", filepath.Join(dir, "sub.png"), core.ErrNotFound},
		{"8-bit", eight, core.ErrBitDepth},
		{"rgb", rgb, core.ErrBitDepth},
		{"not an image", garbage, core.ErrUnsupportedFormat},
		{"wrong extension", txt, core.ErrUnsupportedFormat},
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := loader.LoadImage(tt.path)
			assert.Nil(t, grid)
			assert.ErrorIs(t, err, tt.want)

			var loadErr *core.LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tt.path, loadErr.Path)
		})
	}
}

func TestLoadPair(t *testing.T) {
	dir := t.TempDir()
	loader, _ := newLoader()

	cy3 := writePNG(t, dir, "cy3.png", gray16(6, 6))
	cy5 := writeTIFF(t, dir, "cy5.tiff", gray16(6, 6))
	small := writePNG(t, dir, "small.png", gray16(6, 5))

	a, b, err := loader.LoadPair(cy3, cy5)
	require.NoError(t, err)
	assert.True(t, a.SameSize(b))

	_, _, err = loader.LoadPair(cy3, small)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)

	_, _, err = loader.LoadPair(filepath.Join(dir, "nope.png"), cy5)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

// pngHeaderOnly writes a PNG signature and a 16-bit grayscale IHDR chunk
// declaring w x h, with no image data after it
func pngHeaderOnly(t *testing.T, dir, name string, w, h uint32) string {
	t.Helper()
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 16 // bit depth
	ihdr[9] = 0  // grayscale

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	require.NoError(t, binary.Write(&buf, binary.BigEndian, uint32(len(ihdr))))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	require.NoError(t, binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk)))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestOversizedHeaderRejectedBeforeDecode(t *testing.T) {
	dir := t.TempDir()
	loader, _ := newLoader()

	huge := pngHeaderOnly(t, dir, "huge.png", 100000, 100000)
	grid, err := loader.LoadImage(huge)
	assert.Nil(t, grid)
	assert.ErrorIs(t, err, core.ErrCorrupt)
	assert.Contains(t, err.Error(), "too large")

	wide := pngHeaderOnly(t, dir, "wide.png", core.MaxDimension+1, 1)
	assert.ErrorIs(t, CheckHeader(wide), core.ErrCorrupt)

	ok := writePNG(t, dir, "ok.png", gray16(3, 2))
	assert.NoError(t, CheckHeader(ok))
	assert.ErrorIs(t, CheckHeader(filepath.Join(dir, "missing.png")), core.ErrNotFound)
}

type failingDecoder struct{}

func (failingDecoder) Name() string { return "failing" }

func (failingDecoder) Decode(string) (*core.ChannelGrid, error) {
	return nil, errors.New("boom")
}

type emptyDecoder struct{}

func (emptyDecoder) Name() string { return "empty" }

func (emptyDecoder) Decode(string) (*core.ChannelGrid, error) {
	return &core.ChannelGrid{}, nil
}

func TestLoadImageWrapsDecoderFailures(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "cy3.png", gray16(2, 2))
	logger, _ := logtest.NewNullLogger()

	_, err := NewImageLoader(failingDecoder{}, logger).LoadImage(path)
	assert.ErrorIs(t, err, core.ErrCorrupt)
	assert.Contains(t, err.Error(), "boom")

	_, err = NewImageLoader(emptyDecoder{}, logger).LoadImage(path)
	assert.ErrorIs(t, err, core.ErrCorrupt)
}

func TestSupportedFormats(t *testing.T) {
	assert.True(t, IsSupportedImageFormat("a/b/C.TIF"))
	assert.True(t, IsSupportedImageFormat("scan.tiff"))
	assert.True(t, IsSupportedImageFormat("scan.png"))
	assert.False(t, IsSupportedImageFormat("scan.jpg"))
	assert.False(t, IsSupportedImageFormat("scan"))

	exts := SupportedExtensions()
	exts[0] = ".bmp"
	assert.Equal(t, ".tif", SupportedExtensions()[0])
}
