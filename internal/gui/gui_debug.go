package gui

import (
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// GUIDebugger records pane render times and UI interactions when debug
// mode is on. A nil or disabled debugger ignores every call.
type GUIDebugger struct {
	logger    *logrus.Logger
	enabled   bool
	startTime time.Time

	renderTimes map[string][]float64 // milliseconds per pane
	errors      []string
}

func NewGUIDebugger(logger *logrus.Logger, enabled bool) *GUIDebugger {
	return &GUIDebugger{
		logger:      logger,
		enabled:     enabled,
		startTime:   time.Now(),
		renderTimes: make(map[string][]float64),
	}
}

func (d *GUIDebugger) active() bool {
	return d != nil && d.enabled
}

// LogRender records how long one pane took to draw
func (d *GUIDebugger) LogRender(pane string, w, h int, duration time.Duration) {
	if !d.active() {
		return
	}
	d.renderTimes[pane] = append(d.renderTimes[pane], float64(duration.Microseconds())/1000)

	// Slow frames are worth seeing individually
	if duration > 50*time.Millisecond {
		d.logger.WithFields(logrus.Fields{
			"pane":        pane,
			"width":       w,
			"height":      h,
			"duration_ms": duration.Milliseconds(),
		}).Debug("Slow pane render")
	}
}

func (d *GUIDebugger) LogUIInteraction(component, action string, data logrus.Fields) {
	if !d.active() {
		return
	}
	d.logger.WithFields(data).WithFields(logrus.Fields{
		"component": component,
		"action":    action,
	}).Debug("UI interaction")
}

func (d *GUIDebugger) LogRuntimeError(component string, err error) {
	if !d.active() {
		return
	}
	d.errors = append(d.errors, component+": "+err.Error())
	d.logger.WithError(err).WithField("component", component).Debug("GUI runtime error")
}

// RenderCount returns how many renders were recorded for a pane
func (d *GUIDebugger) RenderCount(pane string) int {
	if d == nil {
		return 0
	}
	return len(d.renderTimes[pane])
}

// Summary logs render statistics per pane and the session's errors
func (d *GUIDebugger) Summary() {
	if !d.active() {
		return
	}
	for pane, times := range d.renderTimes {
		if len(times) == 0 {
			continue
		}
		mean, std := stat.MeanStdDev(times, nil)
		d.logger.WithFields(logrus.Fields{
			"pane":    pane,
			"renders": len(times),
			"mean_ms": mean,
			"std_ms":  std,
		}).Debug("Render statistics")
	}
	d.logger.WithFields(logrus.Fields{
		"uptime": time.Since(d.startTime).Round(time.Second).String(),
		"errors": len(d.errors),
	}).Debug("GUI debug summary")
}
