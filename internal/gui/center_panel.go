// internal/gui/center_panel.go
// Center panel holding the channel panes in split or combined view
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"mdna-viewer/internal/viewport"
)

// View modes of the center panel
const (
	ViewSplit    = "split"
	ViewCombined = "combined"
)

// CenterPanel shows Cy3 and Cy5 side by side, or the composite alone
type CenterPanel struct {
	logger *logrus.Logger

	container *fyne.Container
	panes     map[viewport.Pane]*ChannelPane

	splitView    fyne.CanvasObject
	combinedView fyne.CanvasObject
	viewMode     string
}

func NewCenterPanel(host paneHost, debugger *GUIDebugger, logger *logrus.Logger) *CenterPanel {
	cp := &CenterPanel{
		logger:   logger,
		panes:    make(map[viewport.Pane]*ChannelPane, len(viewport.Panes)),
		viewMode: ViewSplit,
	}
	for _, p := range viewport.Panes {
		cp.panes[p] = NewChannelPane(p, host, debugger, logger)
	}

	cp.initializeUI()
	return cp
}

func (cp *CenterPanel) initializeUI() {
	split := container.NewHSplit(
		titled("🟢 Cy3", cp.panes[viewport.PaneCy3]),
		titled("🔴 Cy5", cp.panes[viewport.PaneCy5]),
	)
	split.SetOffset(0.5)
	cp.splitView = split
	cp.combinedView = titled("🟡 Combined", cp.panes[viewport.PaneComposite])

	cp.container = container.NewStack(cp.splitView)
}

func titled(title string, pane *ChannelPane) fyne.CanvasObject {
	label := widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	return container.NewBorder(label, nil, nil, nil, pane)
}

// SetViewMode switches between split and combined views
func (cp *CenterPanel) SetViewMode(mode string) {
	if mode == cp.viewMode {
		return
	}

	switch mode {
	case ViewSplit:
		cp.container.Objects = []fyne.CanvasObject{cp.splitView}
	case ViewCombined:
		cp.container.Objects = []fyne.CanvasObject{cp.combinedView}
	default:
		cp.logger.WithField("mode", mode).Warn("Unknown view mode ignored")
		return
	}

	cp.viewMode = mode
	cp.container.Refresh()
	cp.RedrawAll()
	cp.logger.WithField("mode", mode).Info("View mode changed")
}

// ViewMode returns the current view mode
func (cp *CenterPanel) ViewMode() string {
	return cp.viewMode
}

// VisiblePanes lists the panes of the current view
func (cp *CenterPanel) VisiblePanes() []viewport.Pane {
	if cp.viewMode == ViewCombined {
		return []viewport.Pane{viewport.PaneComposite}
	}
	return []viewport.Pane{viewport.PaneCy3, viewport.PaneCy5}
}

// Redraw regenerates one pane
func (cp *CenterPanel) Redraw(pane viewport.Pane) {
	if p, ok := cp.panes[pane]; ok {
		p.Redraw()
	}
}

// RedrawAll regenerates every pane
func (cp *CenterPanel) RedrawAll() {
	for _, p := range cp.panes {
		p.Redraw()
	}
}

func (cp *CenterPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}
