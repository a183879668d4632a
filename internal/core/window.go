package core

import "fmt"

const (
	// DefaultCenter and DefaultWidth span the whole 16-bit range
	DefaultCenter = 32767
	DefaultWidth  = 65535
)

// Window is a contrast window: the intensity sub-range [Center-Width/2,
// Center+Width/2] that is stretched over the full display range.
type Window struct {
	Center int
	Width  int
}

// NewWindow returns a clamped window
func NewWindow(center, width int) Window {
	return Window{Center: center, Width: width}.Clamp()
}

// FullWindow maps the complete 16-bit range
func FullWindow() Window {
	return Window{Center: DefaultCenter, Width: DefaultWidth}
}

// AutoWindow stretches the window over the grid's occupied range
func AutoWindow(grid *ChannelGrid) Window {
	lo, hi := grid.MinMax()
	return WindowFromBounds(int(lo), int(hi))
}

// WindowFromBounds builds a window whose bounds are lo and hi
func WindowFromBounds(lo, hi int) Window {
	if hi < lo {
		lo, hi = hi, lo
	}
	return NewWindow((lo+hi)/2, hi-lo)
}

// Clamp keeps the center inside the 16-bit range and the width at least 1
func (w Window) Clamp() Window {
	w.Center = clampInt(w.Center, 0, MaxIntensity)
	w.Width = clampInt(w.Width, 1, MaxIntensity)
	return w
}

// Bounds returns the mapping range clamped to [0, MaxIntensity]
func (w Window) Bounds() (float64, float64) {
	w = w.Clamp()
	half := float64(w.Width) / 2
	lo := float64(w.Center) - half
	hi := float64(w.Center) + half
	if lo < 0 {
		lo = 0
	}
	if hi > MaxIntensity {
		hi = MaxIntensity
	}
	return lo, hi
}

func (w Window) String() string {
	lo, hi := w.Bounds()
	return fmt.Sprintf("center %d width %d [%.1f, %.1f]", w.Center, w.Width, lo, hi)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
