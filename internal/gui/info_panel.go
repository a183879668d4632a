// internal/gui/info_panel.go
// Info panel with pixel readout, channel statistics and histograms
package gui

import (
	"fmt"
	"image"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"mdna-viewer/internal/core"
	"mdna-viewer/internal/metrics"
)

const (
	histogramWidth  = 300
	histogramHeight = 180
)

const pixelPlaceholder = "Move the cursor over an image"

// channelSection is the statistics card of one channel
type channelSection struct {
	card      *widget.Card
	fileLabel *widget.Label
	stats     *fyne.Container
	histogram *canvas.Image
}

// InfoPanel provides the right panel with the pixel readout and statistics
type InfoPanel struct {
	logger *logrus.Logger

	container *fyne.Container

	pixelLabel *widget.Label
	sections   map[core.Channel]*channelSection
}

func NewInfoPanel(logger *logrus.Logger) *InfoPanel {
	panel := &InfoPanel{
		logger:   logger,
		sections: make(map[core.Channel]*channelSection, len(core.Channels)),
	}

	panel.initializeUI()
	return panel
}

func (ip *InfoPanel) initializeUI() {
	ip.pixelLabel = widget.NewLabel(pixelPlaceholder)
	ip.pixelLabel.Wrapping = fyne.TextWrapWord
	pixelCard := widget.NewCard("📍 Pixel", "", ip.pixelLabel)

	content := container.NewVBox(pixelCard)
	for _, ch := range core.Channels {
		s := &channelSection{
			fileLabel: widget.NewLabel("No image loaded"),
			stats:     container.NewVBox(),
			histogram: canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))),
		}
		s.fileLabel.Truncation = fyne.TextTruncateEllipsis
		s.histogram.FillMode = canvas.ImageFillContain
		s.histogram.SetMinSize(fyne.NewSize(histogramWidth, histogramHeight))
		s.card = widget.NewCard("📊 "+ch.String(), "", container.NewVBox(s.fileLabel, s.stats, s.histogram))

		ip.sections[ch] = s
		content.Add(widget.NewSeparator())
		content.Add(s.card)
	}

	scroll := container.NewVScroll(content)
	scroll.SetMinSize(fyne.NewSize(histogramWidth+20, 400))

	ip.container = container.NewBorder(nil, nil, nil, nil, scroll)
}

func (ip *InfoPanel) GetContainer() fyne.CanvasObject {
	return ip.container
}

// UpdateChannel shows a fresh report and histogram for one channel
func (ip *InfoPanel) UpdateChannel(ch core.Channel, grid *core.ChannelGrid, report metrics.ChannelReport, histogram image.Image) {
	s, ok := ip.sections[ch]
	if !ok {
		return
	}

	if grid != nil {
		s.fileLabel.SetText(fmt.Sprintf("%s  (%dx%d)", filepath.Base(grid.Path), grid.Width, grid.Height))
	}

	s.stats.RemoveAll()
	s.stats.Add(widget.NewLabel("Window: " + report.Window))
	for _, line := range report.Lines() {
		s.stats.Add(widget.NewLabel(line))
	}
	s.stats.Refresh()

	if histogram != nil {
		s.histogram.Image = histogram
		s.histogram.Refresh()
	}
}

// SetPixel shows a pixel readout, or the placeholder when text is empty
func (ip *InfoPanel) SetPixel(text string) {
	if text == "" {
		text = pixelPlaceholder
	}
	ip.pixelLabel.SetText(text)
}

func (ip *InfoPanel) Clear() {
	ip.SetPixel("")
	for _, s := range ip.sections {
		s.fileLabel.SetText("No image loaded")
		s.stats.RemoveAll()
		s.stats.Refresh()
		s.histogram.Image = image.NewRGBA(image.Rect(0, 0, 1, 1))
		s.histogram.Refresh()
	}
}

// StatusManager handles status messages and notifications
type StatusManager struct {
	widget    *widget.Card
	container *fyne.Container
}

func NewStatusManager() *StatusManager {
	manager := &StatusManager{}
	manager.initializeUI()
	return manager
}

func (sm *StatusManager) initializeUI() {
	sm.container = container.NewHBox(
		widget.NewIcon(theme.InfoIcon()),
		widget.NewLabel("Open a Cy3/Cy5 image pair to begin"),
	)
	sm.widget = widget.NewCard("", "", sm.container)
}

func (sm *StatusManager) GetWidget() fyne.CanvasObject {
	return sm.widget
}

func (sm *StatusManager) ShowInfo(message string) {
	sm.updateStatus(message, theme.InfoIcon())
}

func (sm *StatusManager) ShowSuccess(message string) {
	sm.updateStatus(message, theme.ConfirmIcon())
}

func (sm *StatusManager) ShowError(err error) {
	sm.updateStatus(fmt.Sprintf("Error: %s", err.Error()), theme.ErrorIcon())
}

func (sm *StatusManager) updateStatus(message string, icon fyne.Resource) {
	sm.container.RemoveAll()
	sm.container.Add(widget.NewIcon(icon))
	sm.container.Add(widget.NewLabel(message))
	sm.container.Refresh()
}
