// Raw 16-bit channel data shared by the loader, the colorizer and the metrics
package core

import (
	"fmt"
	"image"
)

// MaxIntensity is the largest value a 16-bit sample can hold
const MaxIntensity = 65535

// MaxDimension bounds each side of a loadable image. Decoders check it
// against the file header before allocating the raster.
const MaxDimension = 16384

// Channel identifies one of the two fluorescent dye readings
type Channel int

const (
	Cy3 Channel = iota
	Cy5
)

// Channels lists every channel in display order
var Channels = []Channel{Cy3, Cy5}

func (c Channel) String() string {
	switch c {
	case Cy3:
		return "Cy3"
	case Cy5:
		return "Cy5"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// ChannelGrid is a row-major grid of 16-bit intensities. It is not modified
// after loading.
type ChannelGrid struct {
	Width  int
	Height int
	Pix    []uint16
	Path   string
}

// NewChannelGrid allocates a zeroed grid
func NewChannelGrid(width, height int) *ChannelGrid {
	return &ChannelGrid{
		Width:  width,
		Height: height,
		Pix:    make([]uint16, width*height),
	}
}

// GridFromGray16 copies a decoded 16-bit grayscale image into a grid
func GridFromGray16(img *image.Gray16, path string) *ChannelGrid {
	b := img.Bounds()
	grid := NewChannelGrid(b.Dx(), b.Dy())
	grid.Path = path

	for y := 0; y < grid.Height; y++ {
		row := y * grid.Width
		for x := 0; x < grid.Width; x++ {
			grid.Pix[row+x] = img.Gray16At(b.Min.X+x, b.Min.Y+y).Y
		}
	}
	return grid
}

// At returns the sample at (x, y). Out of range coordinates return 0.
func (g *ChannelGrid) At(x, y int) uint16 {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0
	}
	return g.Pix[y*g.Width+x]
}

func (g *ChannelGrid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

// MinMax returns the smallest and largest sample
func (g *ChannelGrid) MinMax() (uint16, uint16) {
	if len(g.Pix) == 0 {
		return 0, 0
	}
	lo, hi := g.Pix[0], g.Pix[0]
	for _, v := range g.Pix[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// SameSize reports whether both grids have identical dimensions
func (g *ChannelGrid) SameSize(other *ChannelGrid) bool {
	return other != nil && g.Width == other.Width && g.Height == other.Height
}

// Validate checks the grid for basic consistency
func (g *ChannelGrid) Validate() error {
	if err := CheckDimensions(g.Width, g.Height); err != nil {
		return err
	}
	if len(g.Pix) != g.Width*g.Height {
		return fmt.Errorf("sample count %d does not match %dx%d", len(g.Pix), g.Width, g.Height)
	}
	return nil
}

// CheckDimensions rejects empty sizes and sides above MaxDimension
func CheckDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("image too large: %dx%d (max: %d)", width, height, MaxDimension)
	}
	return nil
}
