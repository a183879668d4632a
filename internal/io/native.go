package io

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/tiff"

	"mdna-viewer/internal/core"
)

// NativeDecoder reads 16-bit grayscale PNG and TIFF files without cgo
type NativeDecoder struct{}

func NewNativeDecoder() *NativeDecoder {
	return &NativeDecoder{}
}

func (NativeDecoder) Name() string {
	return "native"
}

func (NativeDecoder) Decode(path string) (grid *core.ChannelGrid, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, core.NewLoadError(path, core.NotFound, err)
		}
		return nil, core.NewLoadError(path, core.Corrupt, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := checkHeader(f, path); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, core.NewLoadError(path, core.Corrupt, err)
	}

	img, format, err := image.Decode(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, core.NewLoadError(path, core.UnsupportedFormat, err)
		}
		return nil, core.NewLoadError(path, core.Corrupt, err)
	}

	gray, ok := img.(*image.Gray16)
	if !ok {
		return nil, core.NewLoadError(path, core.BitDepth,
			fmt.Errorf("%s decoded as %T", format, img))
	}
	return core.GridFromGray16(gray, path), nil
}

// CheckHeader reads only the image header of path and rejects sizes the
// viewer would refuse after decoding, before any raster is allocated
func CheckHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.NewLoadError(path, core.NotFound, err)
		}
		return core.NewLoadError(path, core.Corrupt, err)
	}
	defer f.Close()

	return checkHeader(f, path)
}

func checkHeader(r io.Reader, path string) error {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return core.NewLoadError(path, core.UnsupportedFormat, err)
		}
		return core.NewLoadError(path, core.Corrupt, err)
	}
	if err := core.CheckDimensions(cfg.Width, cfg.Height); err != nil {
		return core.NewLoadError(path, core.Corrupt, err)
	}
	return nil
}
