// Contrast windowing and false-colour mapping of 16-bit channel data
package algorithms

import (
	"image"
	"image/color"
	"math"

	"mdna-viewer/internal/core"
)

// Ramp is the colour a channel reaches at full intensity. Black is the
// ramp's zero endpoint.
type Ramp struct {
	R, G, B uint8
}

var (
	Green = Ramp{G: 255}
	Red   = Ramp{R: 255}
)

// RampForChannel returns the conventional ramp: Cy3 green, Cy5 red
func RampForChannel(ch core.Channel) Ramp {
	if ch == core.Cy5 {
		return Red
	}
	return Green
}

// RampFromColor drops the alpha of c
func RampFromColor(c color.Color) Ramp {
	r, g, b, _ := c.RGBA()
	return Ramp{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Scale returns the ramp colour at the given 8-bit intensity
func (r Ramp) Scale(intensity uint8) color.RGBA {
	i := uint16(intensity)
	return color.RGBA{
		R: uint8(i * uint16(r.R) / 255),
		G: uint8(i * uint16(r.G) / 255),
		B: uint8(i * uint16(r.B) / 255),
		A: 255,
	}
}

// LUT maps every 16-bit sample to its 8-bit display intensity
type LUT [core.MaxIntensity + 1]uint8

// BuildLUT evaluates the window once for every possible sample value
func BuildLUT(w core.Window) *LUT {
	lo, span := windowSpan(w)
	lut := new(LUT)
	for v := range lut {
		lut[v] = intensity(float64(v), lo, span)
	}
	return lut
}

// Intensity returns the display intensity of a single sample
func Intensity(v uint16, w core.Window) uint8 {
	lo, span := windowSpan(w)
	return intensity(float64(v), lo, span)
}

func windowSpan(w core.Window) (float64, float64) {
	lo, hi := w.Bounds()
	if hi-lo <= 0 {
		return lo, 1
	}
	return lo, hi - lo
}

func intensity(v, lo, span float64) uint8 {
	n := (v - lo) / span
	if n < 0 {
		n = 0
	} else if n > 1 {
		n = 1
	}
	return uint8(math.Round(n * 255))
}

// Colorize windows the grid and paints it along the ramp
func Colorize(grid *core.ChannelGrid, w core.Window, ramp Ramp) *image.RGBA {
	out := image.NewRGBA(grid.Bounds())
	lut := BuildLUT(w)

	// one entry per intensity so the inner loop is two lookups
	var palette [256]color.RGBA
	for i := range palette {
		palette[i] = ramp.Scale(uint8(i))
	}

	for y := 0; y < grid.Height; y++ {
		src := grid.Pix[y*grid.Width : (y+1)*grid.Width]
		dst := out.Pix[y*out.Stride : y*out.Stride+grid.Width*4]
		for x, v := range src {
			c := palette[lut[v]]
			dst[x*4+0] = c.R
			dst[x*4+1] = c.G
			dst[x*4+2] = c.B
			dst[x*4+3] = c.A
		}
	}
	return out
}
