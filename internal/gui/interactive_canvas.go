// Interactive channel pane: scroll zooms, drag pans, hover reads pixels
package gui

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"mdna-viewer/internal/viewport"
)

var paneBackground = color.RGBA{R: 24, G: 24, B: 24, A: 255}

// paneHost supplies the images and viewport a ChannelPane draws from and
// receives its interaction events
type paneHost interface {
	Controller() *viewport.Controller
	PaneImage(pane viewport.Pane) image.Image
	ViewportChanged(pane viewport.Pane)
	PixelHovered(pane viewport.Pane, x, y int, inside bool)
}

// ChannelPane displays one of the three images through the viewport
type ChannelPane struct {
	widget.BaseWidget

	pane     viewport.Pane
	host     paneHost
	debugger *GUIDebugger
	logger   *logrus.Logger

	raster *canvas.Raster
}

// NewChannelPane creates a pane bound to a host
func NewChannelPane(pane viewport.Pane, host paneHost, debugger *GUIDebugger, logger *logrus.Logger) *ChannelPane {
	cp := &ChannelPane{
		pane:     pane,
		host:     host,
		debugger: debugger,
		logger:   logger,
	}

	cp.ExtendBaseWidget(cp)
	return cp
}

// CreateRenderer creates the renderer for the pane
func (cp *ChannelPane) CreateRenderer() fyne.WidgetRenderer {
	cp.raster = canvas.NewRaster(cp.draw)
	cp.raster.ScaleMode = canvas.ImageScalePixels

	return &channelPaneRenderer{raster: cp.raster}
}

// draw renders the pane's crop letterboxed into a w x h pixel image
func (cp *ChannelPane) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(out, out.Bounds(), image.NewUniform(paneBackground), image.Point{}, draw.Src)

	ctrl := cp.host.Controller()
	src := cp.host.PaneImage(cp.pane)
	if ctrl == nil || src == nil {
		return out
	}

	start := time.Now()
	rendered := viewport.Render(src, ctrl.State(cp.pane), w, h)
	rb := rendered.Bounds()
	offset := image.Pt((w-rb.Dx())/2, (h-rb.Dy())/2)
	draw.Draw(out, rb.Sub(rb.Min).Add(offset), rendered, rb.Min, draw.Src)
	cp.debugger.LogRender(cp.pane.String(), w, h, time.Since(start))

	return out
}

// toSource maps a widget position to source-image coordinates
func (cp *ChannelPane) toSource(pos fyne.Position) (viewport.Point, bool) {
	ctrl := cp.host.Controller()
	if ctrl == nil {
		return viewport.Point{}, false
	}
	size := cp.Size()
	return viewport.ToSource(ctrl.State(cp.pane),
		float64(size.Width), float64(size.Height),
		float64(pos.X), float64(pos.Y))
}

// Scrolled zooms about the cursor
func (cp *ChannelPane) Scrolled(ev *fyne.ScrollEvent) {
	ctrl := cp.host.Controller()
	if ctrl == nil || ev.Scrolled.DY == 0 {
		return
	}

	focus, inside := cp.toSource(ev.Position)
	if !inside {
		r := ctrl.Rect(cp.pane)
		focus = viewport.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
	}

	if ev.Scrolled.DY > 0 {
		ctrl.ZoomIn(cp.pane, focus)
	} else {
		ctrl.ZoomOut(cp.pane, focus)
	}
	cp.host.ViewportChanged(cp.pane)
}

// Dragged pans so the image follows the cursor
func (cp *ChannelPane) Dragged(ev *fyne.DragEvent) {
	ctrl := cp.host.Controller()
	if ctrl == nil {
		return
	}
	size := cp.Size()
	dx, dy := viewport.PaneDelta(ctrl.State(cp.pane),
		float64(size.Width), float64(size.Height),
		-float64(ev.Dragged.DX), -float64(ev.Dragged.DY))
	if dx == 0 && dy == 0 {
		return
	}
	ctrl.Pan(cp.pane, dx, dy)
	cp.host.ViewportChanged(cp.pane)
}

func (cp *ChannelPane) DragEnd() {
	if ctrl := cp.host.Controller(); ctrl != nil {
		cp.debugger.LogUIInteraction("ChannelPane", "pan", logrus.Fields{
			"pane": cp.pane.String(),
			"rect": ctrl.Rect(cp.pane).String(),
		})
	}
}

// Hover handlers
func (cp *ChannelPane) MouseIn(ev *desktop.MouseEvent) {
	cp.MouseMoved(ev)
}

func (cp *ChannelPane) MouseMoved(ev *desktop.MouseEvent) {
	p, inside := cp.toSource(ev.Position)
	cp.host.PixelHovered(cp.pane, int(math.Floor(p.X)), int(math.Floor(p.Y)), inside)
}

func (cp *ChannelPane) MouseOut() {
	cp.host.PixelHovered(cp.pane, 0, 0, false)
}

// Redraw regenerates the raster
func (cp *ChannelPane) Redraw() {
	if cp.raster != nil {
		cp.raster.Refresh()
	}
}

// channelPaneRenderer is the renderer for the channel pane
type channelPaneRenderer struct {
	raster *canvas.Raster
}

func (r *channelPaneRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
}

func (r *channelPaneRenderer) MinSize() fyne.Size {
	return fyne.NewSize(240, 240)
}

func (r *channelPaneRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *channelPaneRenderer) Refresh() {
	r.raster.Refresh()
}

func (r *channelPaneRenderer) Destroy() {
}
