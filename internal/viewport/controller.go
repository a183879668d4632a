package viewport

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Pane identifies a display region
type Pane int

const (
	PaneCy3 Pane = iota
	PaneCy5
	PaneComposite
)

// Panes lists every pane the controller tracks
var Panes = []Pane{PaneCy3, PaneCy5, PaneComposite}

func (p Pane) String() string {
	switch p {
	case PaneCy3:
		return "cy3"
	case PaneCy5:
		return "cy5"
	case PaneComposite:
		return "composite"
	default:
		return fmt.Sprintf("pane(%d)", int(p))
	}
}

// Mode tells whether panes share one state
type Mode int

const (
	ModeCoupled Mode = iota
	ModeSeparate
)

func (m Mode) String() string {
	if m == ModeCoupled {
		return "coupled"
	}
	return "separate"
}

// Viewport is implemented by Coupled and Separate
type Viewport interface {
	Mode() Mode
	State(pane Pane) *State
	Zoom(pane Pane, factor float64, focus Point)
	Pan(pane Pane, dx, dy float64)
	Reset(pane Pane)
	Resize(width, height int)
}

// Coupled shares a single state between all panes, so every pane shows
// the same source rectangle
type Coupled struct {
	shared *State
	limits Limits
}

func NewCoupled(shared *State, limits Limits) *Coupled {
	return &Coupled{shared: shared, limits: limits}
}

func (c *Coupled) Mode() Mode { return ModeCoupled }

func (c *Coupled) State(Pane) *State { return c.shared }

func (c *Coupled) Zoom(_ Pane, factor float64, focus Point) {
	c.shared.Zoom(factor, focus, c.limits)
}

func (c *Coupled) Pan(_ Pane, dx, dy float64) {
	c.shared.Pan(dx, dy)
}

func (c *Coupled) Reset(Pane) {
	c.shared.Reset(c.limits)
}

func (c *Coupled) Resize(width, height int) {
	c.shared.Resize(width, height, c.limits)
}

// Separate gives every pane its own state
type Separate struct {
	states map[Pane]*State
	limits Limits
}

// NewSeparate seeds every pane with a copy of seed
func NewSeparate(seed *State, limits Limits) *Separate {
	s := &Separate{states: make(map[Pane]*State, len(Panes)), limits: limits}
	for _, p := range Panes {
		s.states[p] = seed.Clone()
	}
	return s
}

func (s *Separate) Mode() Mode { return ModeSeparate }

func (s *Separate) State(pane Pane) *State {
	st, ok := s.states[pane]
	if !ok {
		w, h := s.states[PaneCy3].Source()
		st = NewState(int(w), int(h))
		s.states[pane] = st
	}
	return st
}

func (s *Separate) Zoom(pane Pane, factor float64, focus Point) {
	s.State(pane).Zoom(factor, focus, s.limits)
}

func (s *Separate) Pan(pane Pane, dx, dy float64) {
	s.State(pane).Pan(dx, dy)
}

func (s *Separate) Reset(pane Pane) {
	s.State(pane).Reset(s.limits)
}

func (s *Separate) Resize(width, height int) {
	for _, st := range s.states {
		st.Resize(width, height, s.limits)
	}
}

// Controller holds the active viewport variant and switches between them
type Controller struct {
	current Viewport
	limits  Limits
	logger  *logrus.Logger
}

// NewController starts in coupled or separate mode over a source image
func NewController(width, height int, limits Limits, coupled bool, logger *logrus.Logger) *Controller {
	seed := NewState(width, height)
	seed.Reset(limits)

	var vp Viewport = NewCoupled(seed, limits)
	if !coupled {
		vp = NewSeparate(seed, limits)
	}
	return &Controller{current: vp, limits: limits, logger: logger}
}

func (c *Controller) Mode() Mode {
	return c.current.Mode()
}

func (c *Controller) Limits() Limits {
	return c.limits
}

// State returns the live state of a pane
func (c *Controller) State(pane Pane) *State {
	return c.current.State(pane)
}

// Rect returns the visible source rectangle of a pane
func (c *Controller) Rect(pane Pane) Rect {
	return c.current.State(pane).Rect()
}

// Zoom scales the pane about focus by factor
func (c *Controller) Zoom(pane Pane, factor float64, focus Point) {
	c.current.Zoom(pane, factor, focus)
	c.logger.WithFields(logrus.Fields{
		"pane":   pane.String(),
		"mode":   c.Mode().String(),
		"factor": factor,
		"rect":   c.Rect(pane).String(),
	}).Debug("Viewport zoomed")
}

// ZoomIn zooms by the configured factor
func (c *Controller) ZoomIn(pane Pane, focus Point) {
	c.Zoom(pane, c.limits.ZoomFactor, focus)
}

// ZoomOut zooms by the inverse of the configured factor
func (c *Controller) ZoomOut(pane Pane, focus Point) {
	c.Zoom(pane, 1/c.limits.ZoomFactor, focus)
}

// Pan shifts the pane by a delta in source units
func (c *Controller) Pan(pane Pane, dx, dy float64) {
	c.current.Pan(pane, dx, dy)
}

// Reset restores the full view of a pane
func (c *Controller) Reset(pane Pane) {
	c.current.Reset(pane)
}

// ResetAll restores the full view of every pane
func (c *Controller) ResetAll() {
	for _, p := range Panes {
		c.current.Reset(p)
	}
}

// Resize binds every pane to a new source size
func (c *Controller) Resize(width, height int) {
	c.current.Resize(width, height)
}

// SetCoupled switches modes. Coupling adopts the state of the origin pane;
// decoupling hands every pane a copy of the shared state.
func (c *Controller) SetCoupled(coupled bool, origin Pane) {
	if coupled == (c.Mode() == ModeCoupled) {
		return
	}

	seed := c.current.State(origin).Clone()
	if coupled {
		c.current = NewCoupled(seed, c.limits)
	} else {
		c.current = NewSeparate(seed, c.limits)
	}

	c.logger.WithFields(logrus.Fields{
		"mode":   c.Mode().String(),
		"origin": origin.String(),
	}).Info("Viewport mode changed")
}
