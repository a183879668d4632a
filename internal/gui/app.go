// Main application: wires the session, viewport and panels together
package gui

import (
	"fmt"
	"image"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"mdna-viewer/internal/config"
	"mdna-viewer/internal/core"
	"mdna-viewer/internal/io"
	"mdna-viewer/internal/layers"
	"mdna-viewer/internal/metrics"
	"mdna-viewer/internal/viewport"
)

// Application represents the main viewer window
type Application struct {
	app       fyne.App
	window    fyne.Window
	logger    *logrus.Logger
	debugMode bool
	cfg       *config.Config

	// Core components
	loader     *io.ImageLoader
	stack      *layers.Stack
	controller *viewport.Controller
	evaluator  *metrics.Evaluator

	coupled    bool
	activePane viewport.Pane

	// GUI components
	toolbar     *Toolbar
	contrast    *ContrastPanel
	center      *CenterPanel
	info        *InfoPanel
	status      *StatusManager
	menuHandler *MenuHandler
	debugger    *GUIDebugger

	mainContent *container.Split
}

func NewApplication(app fyne.App, cfg *config.Config, loader *io.ImageLoader, logger *logrus.Logger, debugMode bool) (*Application, error) {
	window := app.NewWindow("🔬 mDNA Viewer")
	window.Resize(fyne.NewSize(1600, 1000))
	window.CenterOnScreen()

	appInstance := &Application{
		app:       app,
		window:    window,
		logger:    logger,
		debugMode: debugMode,
		cfg:       cfg,
		loader:    loader,
	}

	if err := appInstance.initializeCore(); err != nil {
		return nil, err
	}
	appInstance.initializeGUI()
	appInstance.setupLayout()
	appInstance.setupCallbacks()

	return appInstance, nil
}

func (a *Application) initializeCore() error {
	ramps, err := a.cfg.Ramps()
	if err != nil {
		return fmt.Errorf("channel colours: %w", err)
	}
	a.stack = layers.NewStack(ramps, a.cfg.WindowMode(), a.logger)
	a.evaluator = metrics.NewEvaluator()
	a.coupled = a.cfg.Viewer.Coupled
	a.activePane = viewport.PaneCy3
	return nil
}

func (a *Application) initializeGUI() {
	a.toolbar = NewToolbar(a.coupled, a.logger)
	a.contrast = NewContrastPanel(a.logger)
	a.debugger = NewGUIDebugger(a.logger, a.debugMode)
	a.center = NewCenterPanel(a, a.debugger, a.logger)
	a.info = NewInfoPanel(a.logger)
	a.status = NewStatusManager()
	a.menuHandler = NewMenuHandler(a.window, a.logger)
}

func (a *Application) setupLayout() {
	toolbarContainer := container.NewVBox(
		widget.NewCard("🛠️ Tools", "", a.toolbar.GetContainer()),
		widget.NewSeparator(),
	)

	centerPanel := container.NewBorder(
		toolbarContainer,     // top
		a.status.GetWidget(), // bottom
		nil,                  // left
		nil,                  // right
		container.NewPadded(a.center.GetContainer()),
	)

	centerAndRight := container.NewHSplit(centerPanel, a.info.GetContainer())
	centerAndRight.SetOffset(0.78) // Give most space to the panes

	a.mainContent = container.NewHSplit(a.contrast.GetContainer(), centerAndRight)
	a.mainContent.SetOffset(0.2)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(a.mainContent)
}

func (a *Application) setupCallbacks() {
	a.menuHandler.SetCallbacks(
		// onPairSelected
		func(cy3Path, cy5Path string) {
			if err := a.LoadPair(cy3Path, cy5Path); err != nil {
				a.showError("Failed to Load Images", err)
			}
		},
		// onClear
		a.clearAll,
		// onViewChanged
		a.toolbar.SetView,
		// onToggleCoupled
		func() {
			a.toolbar.SetCoupled(!a.coupled)
			a.setCoupled(!a.coupled)
		},
		// onResetZoom
		func() { a.zoom(ZoomReset) },
	)

	a.toolbar.SetCallbacks(
		a.menuHandler.OpenPair,
		a.clearAll,
		a.zoom,
		a.setCoupled,
		func(mode string) {
			a.debugger.LogUIInteraction("Toolbar", "view", logrus.Fields{"mode": mode})
			a.center.SetViewMode(mode)
			a.activePane = a.center.VisiblePanes()[0]
			a.updateZoomLabel()
		},
	)

	a.contrast.SetCallbacks(
		// onWindowChanged
		func(targets []core.Channel, w core.Window) {
			for _, ch := range targets {
				a.stack.SetWindow(ch, w)
			}
			a.channelsChanged(targets)
		},
		// onReset
		func(targets []core.Channel, mode layers.WindowMode) {
			for _, ch := range targets {
				a.stack.ResetWindow(ch, mode)
			}
			a.contrast.SetWindow(a.stack.Window(targets[0]))
			a.channelsChanged(targets)
			a.logger.WithFields(logrus.Fields{
				"mode":     string(mode),
				"channels": len(targets),
			}).Info("Contrast windows reset")
		},
		// onTargetChanged
		func(targets []core.Channel) {
			a.contrast.SetWindow(a.stack.Window(targets[0]))
		},
		// onVisibilityChanged
		func(ch core.Channel, visible bool) {
			a.stack.SetVisible(ch, visible)
			a.center.Redraw(viewport.PaneComposite)
		},
	)
}

// LoadPair loads and installs a Cy3/Cy5 pair. On error the current session
// is left untouched.
func (a *Application) LoadPair(cy3Path, cy5Path string) error {
	cy3, cy5, err := a.loader.LoadPair(cy3Path, cy5Path)
	if err != nil {
		return err
	}
	if err := a.stack.SetGrids(cy3, cy5); err != nil {
		return err
	}

	size := a.stack.Size()
	if a.controller == nil {
		a.controller = viewport.NewController(size.X, size.Y, a.cfg.Limits(), a.coupled, a.logger)
	} else {
		a.controller.Resize(size.X, size.Y)
	}

	for _, ch := range core.Channels {
		a.stack.SetVisible(ch, true)
	}
	a.contrast.Reset()
	a.contrast.SetWindow(a.stack.Window(core.Cy3))
	a.contrast.Enable()
	a.toolbar.Enable()

	a.channelsChanged(core.Channels)
	a.updateZoomLabel()
	a.status.ShowSuccess(fmt.Sprintf("Loaded %s + %s (%dx%d)",
		filepath.Base(cy3Path), filepath.Base(cy5Path), size.X, size.Y))
	return nil
}

func (a *Application) clearAll() {
	a.stack.Clear()
	a.controller = nil

	a.contrast.Reset()
	a.contrast.Disable()
	a.toolbar.Disable()
	a.info.Clear()
	a.center.RedrawAll()

	a.status.ShowInfo("Cleared. Open a Cy3/Cy5 image pair to begin")
}

// channelsChanged redraws the panes and statistics affected by new windows
func (a *Application) channelsChanged(channels []core.Channel) {
	for _, ch := range channels {
		a.updateStats(ch)
		if ch == core.Cy3 {
			a.center.Redraw(viewport.PaneCy3)
		} else {
			a.center.Redraw(viewport.PaneCy5)
		}
	}
	a.center.Redraw(viewport.PaneComposite)
}

func (a *Application) updateStats(ch core.Channel) {
	layer := a.stack.Layer(ch)
	if layer == nil || layer.Grid == nil || layer.Summary == nil {
		return
	}

	report := a.evaluator.GenerateReport(ch, layer.Summary, layer.Window)
	hist, err := metrics.HistogramImage(ch, layer.Summary, layer.Window, layer.Ramp.Scale(255),
		histogramWidth, histogramHeight)
	if err != nil {
		a.logger.WithError(err).WithField("channel", ch.String()).Warn("Histogram not rendered")
	}
	a.info.UpdateChannel(ch, layer.Grid, report, hist)
}

func (a *Application) zoom(step int) {
	if a.controller == nil {
		return
	}
	pane := a.activePane
	r := a.controller.Rect(pane)
	focus := viewport.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}

	switch step {
	case ZoomInStep:
		a.controller.ZoomIn(pane, focus)
	case ZoomOutStep:
		a.controller.ZoomOut(pane, focus)
	default:
		a.controller.Reset(pane)
	}
	a.ViewportChanged(pane)
}

func (a *Application) setCoupled(coupled bool) {
	a.coupled = coupled
	if a.controller != nil {
		a.controller.SetCoupled(coupled, a.activePane)
		a.center.RedrawAll()
	}
	if coupled {
		a.status.ShowInfo("Zoom coupled across panes")
	} else {
		a.status.ShowInfo("Panes zoom independently")
	}
}

func (a *Application) updateZoomLabel() {
	if a.controller == nil {
		a.toolbar.SetScale(1)
		return
	}
	a.toolbar.SetScale(a.controller.State(a.activePane).Scale)
}

// Controller returns the viewport controller, nil until a pair is loaded
func (a *Application) Controller() *viewport.Controller {
	return a.controller
}

// PaneImage returns the full-resolution image a pane displays
func (a *Application) PaneImage(pane viewport.Pane) image.Image {
	var img *image.RGBA
	switch pane {
	case viewport.PaneCy3:
		img = a.stack.Colorized(core.Cy3)
	case viewport.PaneCy5:
		img = a.stack.Colorized(core.Cy5)
	case viewport.PaneComposite:
		comp, err := a.stack.Composite()
		if err != nil {
			return nil
		}
		img = comp
	}
	if img == nil {
		return nil
	}
	return img
}

// ViewportChanged redraws after a zoom or pan in pane
func (a *Application) ViewportChanged(pane viewport.Pane) {
	a.activePane = pane
	if a.controller != nil && a.controller.Mode() == viewport.ModeCoupled {
		a.center.RedrawAll()
	} else {
		a.center.Redraw(pane)
	}
	a.updateZoomLabel()
}

// PixelHovered updates the pixel readout
func (a *Application) PixelHovered(_ viewport.Pane, x, y int, inside bool) {
	if !inside {
		a.info.SetPixel("")
		return
	}
	sample, ok := a.stack.Sample(x, y)
	if !ok {
		a.info.SetPixel("")
		return
	}
	a.info.SetPixel(sample.String())
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main viewer window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.debugger.Summary()
	a.stack.Clear()
	a.controller = nil
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	a.debugger.LogRuntimeError(title, err)
	dialog.ShowError(err, a.window)
	a.status.ShowError(err)
}
