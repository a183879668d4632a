// Layers package holding the two channel layers of a viewing session
package layers

import (
	"fmt"
	"image"
	"image/color"

	"github.com/sirupsen/logrus"

	"mdna-viewer/internal/algorithms"
	"mdna-viewer/internal/core"
	"mdna-viewer/internal/metrics"
)

// WindowMode selects how default contrast windows are derived
type WindowMode string

const (
	WindowFull WindowMode = "full"
	WindowAuto WindowMode = "auto"
)

// Layer is one channel: its raw grid, contrast window and false-colour ramp.
// Summary is computed once per installed grid and survives window changes.
type Layer struct {
	Channel core.Channel
	Grid    *core.ChannelGrid
	Summary *metrics.Summary
	Window  core.Window
	Ramp    algorithms.Ramp
	Visible bool

	colorized *image.RGBA
}

// Sample is the pixel readout under the cursor
type Sample struct {
	X, Y      int
	Cy3, Cy5  uint16
	Composite color.RGBA
}

func (s Sample) String() string {
	return fmt.Sprintf("x=%d y=%d  Cy3=%d  Cy5=%d  RGB=(%d,%d,%d)",
		s.X, s.Y, s.Cy3, s.Cy5, s.Composite.R, s.Composite.G, s.Composite.B)
}

// Stack owns the session state. It is only touched from UI event handlers,
// so it carries no locks.
type Stack struct {
	layers     map[core.Channel]*Layer
	windowMode WindowMode
	composite  *image.RGBA
	logger     *logrus.Logger
}

// NewStack creates an empty session using the given ramps
func NewStack(ramps map[core.Channel]algorithms.Ramp, mode WindowMode, logger *logrus.Logger) *Stack {
	s := &Stack{
		layers:     make(map[core.Channel]*Layer, len(core.Channels)),
		windowMode: mode,
		logger:     logger,
	}
	for _, ch := range core.Channels {
		ramp, ok := ramps[ch]
		if !ok {
			ramp = algorithms.RampForChannel(ch)
		}
		s.layers[ch] = &Layer{
			Channel: ch,
			Window:  core.FullWindow(),
			Ramp:    ramp,
			Visible: true,
		}
	}
	return s
}

// SetGrids installs a new image pair. On error the previous pair stays.
func (s *Stack) SetGrids(cy3, cy5 *core.ChannelGrid) error {
	if cy3 == nil || cy5 == nil {
		return fmt.Errorf("both channels are required")
	}
	for _, g := range []*core.ChannelGrid{cy3, cy5} {
		if err := g.Validate(); err != nil {
			return core.NewLoadError(g.Path, core.Corrupt, err)
		}
	}
	if !cy3.SameSize(cy5) {
		return core.NewLoadError(cy5.Path, core.DimensionMismatch,
			fmt.Errorf("%dx%d vs %dx%d", cy3.Width, cy3.Height, cy5.Width, cy5.Height))
	}

	summaries := make([]*metrics.Summary, 0, 2)
	for _, g := range []*core.ChannelGrid{cy3, cy5} {
		sum, err := metrics.NewSummary(g)
		if err != nil {
			return core.NewLoadError(g.Path, core.Corrupt, err)
		}
		summaries = append(summaries, sum)
	}

	s.layers[core.Cy3].Grid, s.layers[core.Cy3].Summary = cy3, summaries[0]
	s.layers[core.Cy5].Grid, s.layers[core.Cy5].Summary = cy5, summaries[1]
	s.ResetWindows(s.windowMode)

	s.logger.WithFields(logrus.Fields{
		"cy3":    cy3.Path,
		"cy5":    cy5.Path,
		"width":  cy3.Width,
		"height": cy3.Height,
	}).Info("Channel pair installed")
	return nil
}

// HasImages reports whether a pair is loaded
func (s *Stack) HasImages() bool {
	return s.layers[core.Cy3].Grid != nil && s.layers[core.Cy5].Grid != nil
}

// Size returns the shared dimensions of the loaded pair
func (s *Stack) Size() image.Point {
	if !s.HasImages() {
		return image.Point{}
	}
	g := s.layers[core.Cy3].Grid
	return image.Pt(g.Width, g.Height)
}

// Layer returns the layer of a channel
func (s *Stack) Layer(ch core.Channel) *Layer {
	return s.layers[ch]
}

// Window returns the current contrast window of a channel
func (s *Stack) Window(ch core.Channel) core.Window {
	return s.layers[ch].Window
}

// SetWindow clamps and applies a contrast window
func (s *Stack) SetWindow(ch core.Channel, w core.Window) {
	l := s.layers[ch]
	w = w.Clamp()
	if l.Window == w {
		return
	}
	l.Window = w
	s.invalidate(l)

	s.logger.WithFields(logrus.Fields{
		"channel": ch.String(),
		"center":  w.Center,
		"width":   w.Width,
	}).Debug("Contrast window changed")
}

// ResetWindows restores default windows for both channels
func (s *Stack) ResetWindows(mode WindowMode) {
	for _, ch := range core.Channels {
		s.ResetWindow(ch, mode)
	}
}

// ResetWindow restores the default window of one channel. Auto mode
// stretches the window over the channel's occupied range.
func (s *Stack) ResetWindow(ch core.Channel, mode WindowMode) {
	l := s.layers[ch]
	w := core.FullWindow()
	if mode == WindowAuto && l.Grid != nil {
		w = core.AutoWindow(l.Grid)
	}
	l.Window = w
	s.invalidate(l)
}

// SetVisible hides or shows a channel in the composite
func (s *Stack) SetVisible(ch core.Channel, visible bool) {
	l := s.layers[ch]
	if l.Visible == visible {
		return
	}
	l.Visible = visible
	s.composite = nil
}

// Colorized returns the false-colour rendering of a channel, recomputing it
// only after its window changed
func (s *Stack) Colorized(ch core.Channel) *image.RGBA {
	l := s.layers[ch]
	if l.Grid == nil {
		return nil
	}
	if l.colorized == nil {
		l.colorized = algorithms.Colorize(l.Grid, l.Window, l.Ramp)
	}
	return l.colorized
}

// Composite returns the additive overlay of the visible channels
func (s *Stack) Composite() (*image.RGBA, error) {
	if !s.HasImages() {
		return nil, fmt.Errorf("no images loaded")
	}
	if s.composite != nil {
		return s.composite, nil
	}

	parts := make([]*image.RGBA, 0, len(core.Channels))
	for _, ch := range core.Channels {
		if s.layers[ch].Visible {
			parts = append(parts, s.Colorized(ch))
		}
	}
	if len(parts) == 0 {
		size := s.Size()
		parts = append(parts, image.NewRGBA(image.Rect(0, 0, size.X, size.Y)))
	}

	out, err := algorithms.CompositeAll(parts...)
	if err != nil {
		return nil, fmt.Errorf("compositing channels: %w", err)
	}
	s.composite = out
	return out, nil
}

// Sample reads both raw channels and the composite at (x, y)
func (s *Stack) Sample(x, y int) (Sample, bool) {
	size := s.Size()
	if !s.HasImages() || x < 0 || y < 0 || x >= size.X || y >= size.Y {
		return Sample{}, false
	}

	sample := Sample{
		X:   x,
		Y:   y,
		Cy3: s.layers[core.Cy3].Grid.At(x, y),
		Cy5: s.layers[core.Cy5].Grid.At(x, y),
	}
	if comp, err := s.Composite(); err == nil {
		sample.Composite = comp.RGBAAt(x, y)
	}
	return sample, true
}

// Clear drops the loaded pair and restores default windows
func (s *Stack) Clear() {
	for _, l := range s.layers {
		l.Grid = nil
		l.Summary = nil
		l.Window = core.FullWindow()
		l.Visible = true
		s.invalidate(l)
	}
	s.logger.Info("Session cleared")
}

func (s *Stack) invalidate(l *Layer) {
	l.colorized = nil
	s.composite = nil
}
