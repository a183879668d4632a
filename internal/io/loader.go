// Loading of paired 16-bit channel images
package io

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"mdna-viewer/internal/core"
)

// Decoder turns a file into a channel grid. Implementations return a
// *core.LoadError for anything that is not a 16-bit single-channel raster.
type Decoder interface {
	Decode(path string) (*core.ChannelGrid, error)
	Name() string
}

var supportedExtensions = []string{".tif", ".tiff", ".png"}

// ImageLoader validates paths and delegates decoding
type ImageLoader struct {
	decoder Decoder
	logger  *logrus.Logger
}

func NewImageLoader(decoder Decoder, logger *logrus.Logger) *ImageLoader {
	return &ImageLoader{
		decoder: decoder,
		logger:  logger,
	}
}

// LoadImage loads one channel image
func (il *ImageLoader) LoadImage(path string) (*core.ChannelGrid, error) {
	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"decoder":  il.decoder.Name(),
	}).Debug("Loading channel image")

	if !IsSupportedImageFormat(path) {
		return nil, core.NewLoadError(path, core.UnsupportedFormat,
			fmt.Errorf("extension %q not in %v", filepath.Ext(path), supportedExtensions))
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, core.NewLoadError(path, core.NotFound, err)
		}
		return nil, core.NewLoadError(path, core.Corrupt, err)
	}
	if info.IsDir() {
		return nil, core.NewLoadError(path, core.NotFound, errors.New("path is a directory"))
	}

	grid, err := il.decoder.Decode(path)
	if err != nil {
		var loadErr *core.LoadError
		if errors.As(err, &loadErr) {
			return nil, err
		}
		return nil, core.NewLoadError(path, core.Corrupt, err)
	}

	if err := grid.Validate(); err != nil {
		return nil, core.NewLoadError(path, core.Corrupt, err)
	}
	grid.Path = path

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    grid.Width,
		"height":   grid.Height,
	}).Info("Channel image loaded")

	return grid, nil
}

// LoadPair loads both channels and checks that they share dimensions
func (il *ImageLoader) LoadPair(cy3Path, cy5Path string) (*core.ChannelGrid, *core.ChannelGrid, error) {
	cy3, err := il.LoadImage(cy3Path)
	if err != nil {
		return nil, nil, err
	}
	cy5, err := il.LoadImage(cy5Path)
	if err != nil {
		return nil, nil, err
	}

	if !cy3.SameSize(cy5) {
		return nil, nil, core.NewLoadError(cy5Path, core.DimensionMismatch,
			fmt.Errorf("%dx%d does not match %s at %dx%d", cy5.Width, cy5.Height, cy3Path, cy3.Width, cy3.Height))
	}
	return cy3, cy5, nil
}

// IsSupportedImageFormat checks the file extension only
func IsSupportedImageFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedExtensions {
		if ext == format {
			return true
		}
	}
	return false
}

// SupportedExtensions returns the extensions accepted by the file dialog
func SupportedExtensions() []string {
	return append([]string(nil), supportedExtensions...)
}
