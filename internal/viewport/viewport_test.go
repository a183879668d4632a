package viewport

import (
	"image"
	"image/color"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T, coupled bool) *Controller {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	return NewController(512, 512, DefaultLimits(), coupled, logger)
}

func assertInside(t *testing.T, r Rect) {
	t.Helper()
	assert.GreaterOrEqual(t, r.X, 0.0)
	assert.GreaterOrEqual(t, r.Y, 0.0)
	assert.LessOrEqual(t, r.X+r.W, 512.0)
	assert.LessOrEqual(t, r.Y+r.H, 512.0)
}

func TestCoupledZoomReplicates(t *testing.T) {
	c := newController(t, true)
	require.Equal(t, ModeCoupled, c.Mode())

	c.Zoom(PaneCy3, 2, Point{X: 100, Y: 100})

	want := Rect{X: 50, Y: 50, W: 256, H: 256}
	assert.Equal(t, want, c.Rect(PaneCy3))
	assert.Equal(t, want, c.Rect(PaneCy5))
	assert.Equal(t, want, c.Rect(PaneComposite))

	c.Pan(PaneComposite, 10, -20)
	assert.Equal(t, c.Rect(PaneComposite), c.Rect(PaneCy3))
	assert.Equal(t, Rect{X: 60, Y: 30, W: 256, H: 256}, c.Rect(PaneCy5))
}

func TestSeparateZoomIsLocal(t *testing.T) {
	c := newController(t, false)
	require.Equal(t, ModeSeparate, c.Mode())

	c.Zoom(PaneCy3, 2, Point{X: 100, Y: 100})
	assert.Equal(t, Rect{X: 50, Y: 50, W: 256, H: 256}, c.Rect(PaneCy3))
	assert.Equal(t, Rect{W: 512, H: 512}, c.Rect(PaneCy5))
	assert.Equal(t, Rect{W: 512, H: 512}, c.Rect(PaneComposite))

	c.Pan(PaneCy5, 100, 100)
	assert.Equal(t, Rect{W: 512, H: 512}, c.Rect(PaneCy5), "full view cannot pan")
}

func TestPanClampsToImage(t *testing.T) {
	c := newController(t, true)
	c.Zoom(PaneCy3, 4, Point{X: 256, Y: 256})

	c.Pan(PaneCy3, 10000, 10000)
	r := c.Rect(PaneCy3)
	assertInside(t, r)
	assert.Equal(t, 384.0, r.X)
	assert.Equal(t, 384.0, r.Y)

	c.Pan(PaneCy3, -10000, -5)
	r = c.Rect(PaneCy3)
	assertInside(t, r)
	assert.Equal(t, 0.0, r.X)
	assert.Equal(t, 379.0, r.Y)
}

func TestZoomNearEdgeStaysInside(t *testing.T) {
	c := newController(t, true)
	c.Zoom(PaneCy3, 3, Point{X: 511, Y: 0})
	assertInside(t, c.Rect(PaneCy3))

	c.Zoom(PaneCy3, 0.5, Point{X: 0, Y: 511})
	assertInside(t, c.Rect(PaneCy3))
}

func TestScaleLimits(t *testing.T) {
	c := newController(t, true)

	c.Zoom(PaneCy3, 1e6, Point{X: 10, Y: 10})
	assert.Equal(t, DefaultMaxScale, c.State(PaneCy3).Scale)
	assertInside(t, c.Rect(PaneCy3))

	c.Zoom(PaneCy3, 1e-6, Point{X: 10, Y: 10})
	assert.Equal(t, DefaultMinScale, c.State(PaneCy3).Scale)
	assert.Equal(t, Rect{W: 512, H: 512}, c.Rect(PaneCy3))

	c.Zoom(PaneCy3, 0, Point{})
	assert.Equal(t, DefaultMinScale, c.State(PaneCy3).Scale)
}

func TestZoomInOutUseFactor(t *testing.T) {
	c := newController(t, true)
	focus := Point{X: 200, Y: 300}

	c.ZoomIn(PaneCy3, focus)
	assert.InDelta(t, DefaultZoomFactor, c.State(PaneCy3).Scale, 1e-9)
	c.ZoomIn(PaneCy3, focus)
	c.ZoomOut(PaneCy3, focus)
	assert.InDelta(t, DefaultZoomFactor, c.State(PaneCy3).Scale, 1e-9)

	// the focus keeps its relative position in the rectangle
	r := c.Rect(PaneCy3)
	assert.InDelta(t, 200.0/512, (focus.X-r.X)/r.W, 1e-9)
	assert.InDelta(t, 300.0/512, (focus.Y-r.Y)/r.H, 1e-9)
}

func TestReset(t *testing.T) {
	c := newController(t, false)
	c.Zoom(PaneCy3, 8, Point{X: 300, Y: 300})
	c.Zoom(PaneCy5, 8, Point{X: 300, Y: 300})

	c.Reset(PaneCy3)
	assert.Equal(t, Rect{W: 512, H: 512}, c.Rect(PaneCy3))
	assert.NotEqual(t, Rect{W: 512, H: 512}, c.Rect(PaneCy5))

	c.ResetAll()
	assert.Equal(t, Rect{W: 512, H: 512}, c.Rect(PaneCy5))
}

func TestModeSwitching(t *testing.T) {
	c := newController(t, true)
	c.Zoom(PaneCy3, 2, Point{X: 100, Y: 100})
	zoomed := c.Rect(PaneCy3)

	c.SetCoupled(false, PaneCy3)
	require.Equal(t, ModeSeparate, c.Mode())
	for _, p := range Panes {
		assert.Equal(t, zoomed, c.Rect(p), p.String())
	}

	c.Pan(PaneCy5, 40, 0)
	assert.Equal(t, zoomed, c.Rect(PaneCy3))
	moved := c.Rect(PaneCy5)
	assert.NotEqual(t, zoomed, moved)

	c.SetCoupled(true, PaneCy5)
	require.Equal(t, ModeCoupled, c.Mode())
	for _, p := range Panes {
		assert.Equal(t, moved, c.Rect(p), p.String())
	}

	// switching to the current mode is a no-op
	c.SetCoupled(true, PaneCy3)
	assert.Equal(t, moved, c.Rect(PaneCy3))
}

func TestResizeResets(t *testing.T) {
	c := newController(t, true)
	c.Zoom(PaneCy3, 2, Point{X: 10, Y: 10})
	c.Resize(100, 50)
	assert.Equal(t, Rect{W: 100, H: 50}, c.Rect(PaneCy5))
}

func TestLimitsValidate(t *testing.T) {
	assert.NoError(t, DefaultLimits().Validate())
	assert.Error(t, Limits{ZoomFactor: 1, MinScale: 1, MaxScale: 2}.Validate())
	assert.Error(t, Limits{ZoomFactor: 2, MinScale: 0.5, MaxScale: 2}.Validate())
	assert.Error(t, Limits{ZoomFactor: 2, MinScale: 4, MaxScale: 2}.Validate())
}

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestRenderFitsPane(t *testing.T) {
	src := solidImage(512, 512, color.RGBA{R: 10, G: 200, A: 255})
	st := NewState(512, 512)

	out := Render(src, st, 256, 128)
	assert.Equal(t, image.Pt(128, 128), out.Bounds().Size())

	st.Zoom(2, Point{X: 100, Y: 100}, DefaultLimits())
	out = Render(src, st, 512, 512)
	assert.Equal(t, image.Pt(512, 512), out.Bounds().Size())
	r, g, _, _ := out.At(out.Bounds().Min.X+100, out.Bounds().Min.Y+100).RGBA()
	assert.Equal(t, uint32(10), r>>8)
	assert.Equal(t, uint32(200), g>>8)

	empty := Render(src, st, 0, 0)
	assert.Equal(t, image.Pt(1, 1), empty.Bounds().Size())
}

func TestToSource(t *testing.T) {
	st := NewState(512, 512)

	p, ok := ToSource(st, 256, 256, 128, 128)
	require.True(t, ok)
	assert.Equal(t, Point{X: 256, Y: 256}, p)

	// letterboxed pane: the left band lies outside the image
	_, ok = ToSource(st, 512, 256, 10, 10)
	assert.False(t, ok)

	st.Zoom(2, Point{X: 100, Y: 100}, DefaultLimits())
	p, ok = ToSource(st, 256, 256, 0, 0)
	require.True(t, ok)
	assert.Equal(t, Point{X: 50, Y: 50}, p)

	dx, dy := PaneDelta(st, 256, 256, 30, -12)
	assert.Equal(t, 30.0, dx)
	assert.Equal(t, -12.0, dy)
}
