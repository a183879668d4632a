// internal/gui/control_panel.go
// Contrast panel: window center/width per channel with slider and entry
package gui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"mdna-viewer/internal/core"
	"mdna-viewer/internal/layers"
)

// Contrast targets offered by the radio group
const (
	TargetCy3  = "Cy3"
	TargetCy5  = "Cy5"
	TargetBoth = "Both"
)

// TargetChannels resolves a target name to the channels it adjusts
func TargetChannels(target string) []core.Channel {
	switch target {
	case TargetCy3:
		return []core.Channel{core.Cy3}
	case TargetCy5:
		return []core.Channel{core.Cy5}
	default:
		return []core.Channel{core.Cy3, core.Cy5}
	}
}

// ParseIntensity parses an entry value in [lowest, 65535]
func ParseIntensity(text string, lowest int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("not a whole number: %q", text)
	}
	if v < lowest || v > core.MaxIntensity {
		return 0, fmt.Errorf("%d outside [%d, %d]", v, lowest, core.MaxIntensity)
	}
	return v, nil
}

type ContrastPanel struct {
	logger *logrus.Logger

	container *fyne.Container

	targetRadio  *widget.RadioGroup
	centerSlider *widget.Slider
	widthSlider  *widget.Slider
	centerEntry  *widget.Entry
	widthEntry   *widget.Entry
	boundsLabel  *widget.Label
	fullBtn      *widget.Button
	autoBtn      *widget.Button
	showCy3      *widget.Check
	showCy5      *widget.Check

	window   core.Window
	target   string
	updating bool

	// Callbacks
	onWindowChanged     func([]core.Channel, core.Window)
	onReset             func([]core.Channel, layers.WindowMode)
	onTargetChanged     func([]core.Channel)
	onVisibilityChanged func(core.Channel, bool)
}

func NewContrastPanel(logger *logrus.Logger) *ContrastPanel {
	panel := &ContrastPanel{
		logger: logger,
		window: core.FullWindow(),
		target: TargetBoth,
	}

	panel.initializeUI()
	return panel
}

func (cp *ContrastPanel) initializeUI() {
	cp.targetRadio = widget.NewRadioGroup([]string{TargetCy3, TargetCy5, TargetBoth}, nil)
	cp.targetRadio.Horizontal = true
	cp.targetRadio.Required = true

	cp.centerSlider = widget.NewSlider(0, core.MaxIntensity)
	cp.centerSlider.Step = 1
	cp.widthSlider = widget.NewSlider(1, core.MaxIntensity)
	cp.widthSlider.Step = 1

	cp.centerEntry = widget.NewEntry()
	cp.centerEntry.Validator = func(s string) error {
		_, err := ParseIntensity(s, 0)
		return err
	}
	cp.widthEntry = widget.NewEntry()
	cp.widthEntry.Validator = func(s string) error {
		_, err := ParseIntensity(s, 1)
		return err
	}

	cp.boundsLabel = widget.NewLabel("")

	cp.fullBtn = widget.NewButtonWithIcon("Full range", theme.ViewFullScreenIcon(), func() {
		cp.reset(layers.WindowFull)
	})
	cp.autoBtn = widget.NewButtonWithIcon("Auto", theme.ViewRefreshIcon(), func() {
		cp.reset(layers.WindowAuto)
	})

	cp.showCy3 = widget.NewCheck("Show Cy3 in overlay", func(on bool) {
		cp.visibilityChanged(core.Cy3, on)
	})
	cp.showCy5 = widget.NewCheck("Show Cy5 in overlay", func(on bool) {
		cp.visibilityChanged(core.Cy5, on)
	})

	form := widget.NewForm(
		widget.NewFormItem("Center", container.NewBorder(nil, nil, nil, sized(cp.centerEntry), cp.centerSlider)),
		widget.NewFormItem("Width", container.NewBorder(nil, nil, nil, sized(cp.widthEntry), cp.widthSlider)),
	)

	content := container.NewVBox(
		widget.NewCard("🎚️ Adjust", "", cp.targetRadio),
		widget.NewCard("🌗 Window", "", container.NewVBox(
			form,
			cp.boundsLabel,
			container.NewGridWithColumns(2, cp.fullBtn, cp.autoBtn),
		)),
		widget.NewCard("👁️ Overlay", "", container.NewVBox(cp.showCy3, cp.showCy5)),
	)
	cp.container = container.NewBorder(nil, nil, nil, nil, container.NewVScroll(content))

	// Set callbacks after initialization so the initial values stay silent
	cp.updating = true
	cp.targetRadio.SetSelected(cp.target)
	cp.showCy3.SetChecked(true)
	cp.showCy5.SetChecked(true)
	cp.updating = false
	cp.SetWindow(cp.window)

	cp.targetRadio.OnChanged = cp.targetChanged
	cp.centerSlider.OnChanged = func(v float64) {
		cp.applyWindow(core.NewWindow(int(v), cp.window.Width))
	}
	cp.widthSlider.OnChanged = func(v float64) {
		cp.applyWindow(core.NewWindow(cp.window.Center, int(v)))
	}
	cp.centerEntry.OnSubmitted = func(s string) {
		v, err := ParseIntensity(s, 0)
		if err != nil {
			cp.rejectEntry("center", s, err)
			return
		}
		cp.applyWindow(core.NewWindow(v, cp.window.Width))
	}
	cp.widthEntry.OnSubmitted = func(s string) {
		v, err := ParseIntensity(s, 1)
		if err != nil {
			cp.rejectEntry("width", s, err)
			return
		}
		cp.applyWindow(core.NewWindow(cp.window.Center, v))
	}

	cp.Disable()
}

func sized(entry *widget.Entry) fyne.CanvasObject {
	return container.NewGridWrap(fyne.NewSize(90, entry.MinSize().Height), entry)
}

// SetWindow shows w without firing callbacks
func (cp *ContrastPanel) SetWindow(w core.Window) {
	cp.updating = true
	defer func() { cp.updating = false }()

	cp.window = w.Clamp()
	cp.centerSlider.SetValue(float64(cp.window.Center))
	cp.widthSlider.SetValue(float64(cp.window.Width))
	cp.centerEntry.SetText(strconv.Itoa(cp.window.Center))
	cp.widthEntry.SetText(strconv.Itoa(cp.window.Width))

	lo, hi := cp.window.Bounds()
	cp.boundsLabel.SetText(fmt.Sprintf("Maps [%.0f, %.0f] to display range", lo, hi))
}

// Window returns the window currently shown
func (cp *ContrastPanel) Window() core.Window {
	return cp.window
}

// Targets returns the channels the panel currently adjusts
func (cp *ContrastPanel) Targets() []core.Channel {
	return TargetChannels(cp.target)
}

func (cp *ContrastPanel) applyWindow(w core.Window) {
	if cp.updating {
		return
	}
	cp.SetWindow(w)
	if cp.onWindowChanged != nil {
		cp.onWindowChanged(cp.Targets(), cp.window)
	}
}

func (cp *ContrastPanel) rejectEntry(field, text string, err error) {
	cp.logger.WithFields(logrus.Fields{
		"field": field,
		"value": text,
		"error": err,
	}).Warn("Invalid window value ignored")
	cp.SetWindow(cp.window)
}

func (cp *ContrastPanel) reset(mode layers.WindowMode) {
	if cp.onReset != nil {
		cp.onReset(cp.Targets(), mode)
	}
}

func (cp *ContrastPanel) targetChanged(target string) {
	if cp.updating || target == "" {
		return
	}
	cp.target = target
	cp.logger.WithField("target", target).Debug("Contrast target changed")
	if cp.onTargetChanged != nil {
		cp.onTargetChanged(cp.Targets())
	}
}

func (cp *ContrastPanel) visibilityChanged(ch core.Channel, on bool) {
	if cp.updating {
		return
	}
	if cp.onVisibilityChanged != nil {
		cp.onVisibilityChanged(ch, on)
	}
}

// Reset restores the initial target, visibility and full window
func (cp *ContrastPanel) Reset() {
	cp.updating = true
	cp.target = TargetBoth
	cp.targetRadio.SetSelected(TargetBoth)
	cp.showCy3.SetChecked(true)
	cp.showCy5.SetChecked(true)
	cp.updating = false
	cp.SetWindow(core.FullWindow())
}

func (cp *ContrastPanel) Enable() {
	cp.targetRadio.Enable()
	cp.centerSlider.Enable()
	cp.widthSlider.Enable()
	cp.centerEntry.Enable()
	cp.widthEntry.Enable()
	cp.fullBtn.Enable()
	cp.autoBtn.Enable()
	cp.showCy3.Enable()
	cp.showCy5.Enable()
}

func (cp *ContrastPanel) Disable() {
	cp.targetRadio.Disable()
	cp.centerSlider.Disable()
	cp.widthSlider.Disable()
	cp.centerEntry.Disable()
	cp.widthEntry.Disable()
	cp.fullBtn.Disable()
	cp.autoBtn.Disable()
	cp.showCy3.Disable()
	cp.showCy5.Disable()
}

func (cp *ContrastPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}

func (cp *ContrastPanel) SetCallbacks(
	onWindowChanged func([]core.Channel, core.Window),
	onReset func([]core.Channel, layers.WindowMode),
	onTargetChanged func([]core.Channel),
	onVisibilityChanged func(core.Channel, bool),
) {
	cp.onWindowChanged = onWindowChanged
	cp.onReset = onReset
	cp.onTargetChanged = onTargetChanged
	cp.onVisibilityChanged = onVisibilityChanged
}
