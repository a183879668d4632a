// internal/gui/toolbar.go
// Top toolbar: open, view toggle, zoom coupling and zoom controls
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
)

// Zoom steps passed to the zoom callback
const (
	ZoomOutStep = -1
	ZoomReset   = 0
	ZoomInStep  = 1
)

type Toolbar struct {
	logger *logrus.Logger

	container *fyne.Container

	// File operations (left side)
	openBtn  *widget.Button
	clearBtn *widget.Button

	// Zoom controls (center)
	zoomInBtn    *widget.Button
	zoomOutBtn   *widget.Button
	zoomResetBtn *widget.Button
	zoomLabel    *widget.Label
	coupledCheck *widget.Check

	// View toggles (right side)
	splitViewBtn    *widget.Button
	combinedViewBtn *widget.Button

	currentView string
	updating    bool

	// Callbacks
	onOpen           func()
	onClear          func()
	onZoom           func(int)
	onCoupledChanged func(bool)
	onViewChanged    func(string)
}

func NewToolbar(coupled bool, logger *logrus.Logger) *Toolbar {
	toolbar := &Toolbar{
		logger:      logger,
		currentView: ViewSplit,
	}

	toolbar.initializeUI(coupled)
	return toolbar
}

func (tb *Toolbar) initializeUI(coupled bool) {
	titleLabel := widget.NewLabelWithStyle("mDNA Viewer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	tb.openBtn = widget.NewButtonWithIcon("OPEN PAIR", theme.FolderOpenIcon(), func() {
		if tb.onOpen != nil {
			tb.onOpen()
		}
	})
	tb.openBtn.Importance = widget.HighImportance

	tb.clearBtn = widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), func() {
		if tb.onClear != nil {
			tb.onClear()
		}
	})

	leftSection := container.NewHBox(
		titleLabel,
		widget.NewSeparator(),
		tb.openBtn,
		tb.clearBtn,
	)

	tb.zoomOutBtn = widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() { tb.zoom(ZoomOutStep) })
	tb.zoomInBtn = widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() { tb.zoom(ZoomInStep) })
	tb.zoomResetBtn = widget.NewButtonWithIcon("", theme.ZoomFitIcon(), func() { tb.zoom(ZoomReset) })
	tb.zoomLabel = widget.NewLabel("100%")

	tb.coupledCheck = widget.NewCheck("Coupled zoom", func(on bool) {
		if tb.updating {
			return
		}
		if tb.onCoupledChanged != nil {
			tb.onCoupledChanged(on)
		}
	})
	tb.updating = true
	tb.coupledCheck.SetChecked(coupled)
	tb.updating = false

	centerSection := container.NewHBox(
		widget.NewLabel("Zoom:"),
		tb.zoomOutBtn,
		tb.zoomLabel,
		tb.zoomInBtn,
		tb.zoomResetBtn,
		widget.NewSeparator(),
		tb.coupledCheck,
	)

	tb.splitViewBtn = widget.NewButtonWithIcon("Split", theme.ViewRestoreIcon(), func() {
		tb.setView(ViewSplit)
	})
	tb.splitViewBtn.Importance = widget.HighImportance // Default active

	tb.combinedViewBtn = widget.NewButtonWithIcon("Combined", theme.ColorPaletteIcon(), func() {
		tb.setView(ViewCombined)
	})

	rightSection := container.NewHBox(
		widget.NewLabel("View:"),
		tb.splitViewBtn,
		tb.combinedViewBtn,
	)

	tb.container = container.NewBorder(
		nil, nil,
		leftSection,   // left
		rightSection,  // right
		centerSection, // center
	)

	tb.Disable()
}

func (tb *Toolbar) zoom(step int) {
	if tb.onZoom != nil {
		tb.onZoom(step)
	}
}

func (tb *Toolbar) setView(view string) {
	if view == tb.currentView {
		return
	}
	tb.currentView = view

	tb.splitViewBtn.Importance = widget.MediumImportance
	tb.combinedViewBtn.Importance = widget.MediumImportance
	switch view {
	case ViewSplit:
		tb.splitViewBtn.Importance = widget.HighImportance
	case ViewCombined:
		tb.combinedViewBtn.Importance = widget.HighImportance
	}
	tb.splitViewBtn.Refresh()
	tb.combinedViewBtn.Refresh()

	if tb.onViewChanged != nil {
		tb.onViewChanged(view)
	}
}

// SetView switches the highlighted view and fires the view callback
func (tb *Toolbar) SetView(view string) {
	tb.setView(view)
}

// SetCoupled updates the check without firing the callback
func (tb *Toolbar) SetCoupled(coupled bool) {
	tb.updating = true
	tb.coupledCheck.SetChecked(coupled)
	tb.updating = false
}

// SetScale shows the zoom level of the active pane
func (tb *Toolbar) SetScale(scale float64) {
	tb.zoomLabel.SetText(fmt.Sprintf("%.0f%%", scale*100))
}

func (tb *Toolbar) Enable() {
	tb.clearBtn.Enable()
	tb.zoomInBtn.Enable()
	tb.zoomOutBtn.Enable()
	tb.zoomResetBtn.Enable()
	tb.splitViewBtn.Enable()
	tb.combinedViewBtn.Enable()
}

// Disable leaves only the open button and the coupling check active
func (tb *Toolbar) Disable() {
	tb.clearBtn.Disable()
	tb.zoomInBtn.Disable()
	tb.zoomOutBtn.Disable()
	tb.zoomResetBtn.Disable()
	tb.splitViewBtn.Disable()
	tb.combinedViewBtn.Disable()
}

func (tb *Toolbar) GetContainer() fyne.CanvasObject {
	return tb.container
}

func (tb *Toolbar) SetCallbacks(
	onOpen func(),
	onClear func(),
	onZoom func(int),
	onCoupledChanged func(bool),
	onViewChanged func(string),
) {
	tb.onOpen = onOpen
	tb.onClear = onClear
	tb.onZoom = onZoom
	tb.onCoupledChanged = onCoupledChanged
	tb.onViewChanged = onViewChanged
}
