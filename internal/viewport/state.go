// Zoom and pan state of the display panes
package viewport

import (
	"fmt"
	"image"
	"math"
)

// Defaults used when no settings file overrides them
const (
	DefaultZoomFactor = 1.15
	DefaultMinScale   = 1.0
	DefaultMaxScale   = 64.0
)

// Limits bound every zoom operation
type Limits struct {
	ZoomFactor float64
	MinScale   float64
	MaxScale   float64
}

// DefaultLimits returns the stock zoom limits
func DefaultLimits() Limits {
	return Limits{
		ZoomFactor: DefaultZoomFactor,
		MinScale:   DefaultMinScale,
		MaxScale:   DefaultMaxScale,
	}
}

// Validate checks that the limits describe a usable zoom range
func (l Limits) Validate() error {
	if l.ZoomFactor <= 1 {
		return fmt.Errorf("zoom factor must be greater than 1, got %g", l.ZoomFactor)
	}
	if l.MinScale < 1 {
		return fmt.Errorf("minimum scale must be at least 1, got %g", l.MinScale)
	}
	if l.MaxScale < l.MinScale {
		return fmt.Errorf("maximum scale %g below minimum %g", l.MaxScale, l.MinScale)
	}
	return nil
}

// Point is a position in source-image coordinates
type Point struct {
	X, Y float64
}

// Rect is a visible region in source-image coordinates
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.1f,%.1f %.1fx%.1f)", r.X, r.Y, r.W, r.H)
}

// State is the visible region of one pane. Scale 1 shows the whole image;
// at scale s the visible rectangle is 1/s of the image in each axis.
type State struct {
	X, Y   float64
	Scale  float64
	width  float64
	height float64
}

// NewState returns a full view of a width x height source
func NewState(width, height int) *State {
	return &State{Scale: 1, width: float64(width), height: float64(height)}
}

// Clone returns an independent copy
func (s *State) Clone() *State {
	c := *s
	return &c
}

// Source returns the source image size the state is bound to
func (s *State) Source() (float64, float64) {
	return s.width, s.height
}

// Rect returns the visible rectangle
func (s *State) Rect() Rect {
	return Rect{X: s.X, Y: s.Y, W: s.width / s.Scale, H: s.height / s.Scale}
}

// Crop returns the smallest pixel rectangle covering the visible region
func (s *State) Crop() image.Rectangle {
	r := s.Rect()
	crop := image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.W)),
		int(math.Ceil(r.Y+r.H)),
	)
	return crop.Intersect(image.Rect(0, 0, int(s.width), int(s.height)))
}

// Zoom multiplies the scale by factor keeping focus at the same relative
// position inside the visible rectangle
func (s *State) Zoom(factor float64, focus Point, limits Limits) {
	if factor <= 0 {
		return
	}
	old := s.Rect()
	s.Scale = clamp(s.Scale*factor, limits.MinScale, limits.MaxScale)
	next := s.Rect()

	if old.W > 0 && old.H > 0 {
		s.X = focus.X - (focus.X-old.X)*next.W/old.W
		s.Y = focus.Y - (focus.Y-old.Y)*next.H/old.H
	}
	s.clampOrigin()
}

// Pan shifts the visible rectangle by a delta in source units
func (s *State) Pan(dx, dy float64) {
	s.X += dx
	s.Y += dy
	s.clampOrigin()
}

// Reset returns to the widest view the limits allow, which is the full
// image unless MinScale is above 1
func (s *State) Reset(limits Limits) {
	s.X, s.Y = 0, 0
	s.Scale = math.Max(1, limits.MinScale)
	s.clampOrigin()
}

// Resize binds the state to a new source size and resets it
func (s *State) Resize(width, height int, limits Limits) {
	s.width, s.height = float64(width), float64(height)
	s.Reset(limits)
}

func (s *State) clampOrigin() {
	r := s.Rect()
	s.X = clamp(s.X, 0, math.Max(0, s.width-r.W))
	s.Y = clamp(s.Y, 0, math.Max(0, s.height-r.H))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
