// Channel statistics shown next to the contrast controls
package metrics

import (
	"fmt"
	"sort"
	"time"

	"mdna-viewer/internal/core"
)

// Metric computes one statistic of a channel under a contrast window
type Metric interface {
	// Calculate computes the metric value from a grid's cached summary
	Calculate(s *Summary, window core.Window) (float64, error)

	// GetName returns the metric name
	GetName() string

	// GetDescription returns the metric description
	GetDescription() string
}

// Evaluator manages and calculates multiple metrics
type Evaluator struct {
	metrics map[string]Metric
}

// NewEvaluator creates a new metrics evaluator with the default metrics
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		metrics: make(map[string]Metric),
	}

	e.RegisterDefaultMetrics()

	return e
}

// RegisterDefaultMetrics registers all default metrics
func (e *Evaluator) RegisterDefaultMetrics() {
	e.Register("min", NewMinimum())
	e.Register("max", NewMaximum())
	e.Register("mean", NewMean())
	e.Register("stddev", NewStdDev())
	e.Register("clipped_low", NewClippedLow())
	e.Register("clipped_high", NewClippedHigh())
	e.Register("otsu", NewOtsuThreshold())
}

// Register registers a metric, replacing any metric of the same name
func (e *Evaluator) Register(name string, metric Metric) {
	e.metrics[name] = metric
}

// Names returns the registered metric names in sorted order
func (e *Evaluator) Names() []string {
	names := make([]string, 0, len(e.metrics))
	for name := range e.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Calculate calculates a specific metric
func (e *Evaluator) Calculate(name string, s *Summary, window core.Window) (float64, error) {
	metric, exists := e.metrics[name]
	if !exists {
		return 0, fmt.Errorf("metric not found: %s", name)
	}

	return metric.Calculate(s, window)
}

// CalculateAll calculates all registered metrics. Metrics that fail are
// left out of the result.
func (e *Evaluator) CalculateAll(s *Summary, window core.Window) map[string]float64 {
	results := make(map[string]float64)

	for name, metric := range e.metrics {
		if value, err := metric.Calculate(s, window); err == nil {
			results[name] = value
		}
	}

	return results
}

// GetMetricInfo returns information about all metrics
func (e *Evaluator) GetMetricInfo() map[string]MetricInfo {
	info := make(map[string]MetricInfo)

	for name, metric := range e.metrics {
		info[name] = MetricInfo{
			Name:        metric.GetName(),
			Description: metric.GetDescription(),
		}
	}

	return info
}

// MetricInfo provides metadata about a metric
type MetricInfo struct {
	Name        string
	Description string
}

// ChannelReport summarises one channel for the info panel
type ChannelReport struct {
	Channel   string             `json:"channel"`
	Window    string             `json:"window"`
	Metrics   map[string]float64 `json:"metrics"`
	Timestamp string             `json:"timestamp"`
}

// GenerateReport calculates every metric for one channel
func (e *Evaluator) GenerateReport(ch core.Channel, s *Summary, window core.Window) ChannelReport {
	return ChannelReport{
		Channel:   ch.String(),
		Window:    window.String(),
		Metrics:   e.CalculateAll(s, window),
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	}
}

// Lines formats the report as label/value pairs in a stable order
func (r ChannelReport) Lines() []string {
	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		v := r.Metrics[name]
		switch name {
		case "clipped_low", "clipped_high":
			lines = append(lines, fmt.Sprintf("%s: %.2f%%", name, v*100))
		default:
			lines = append(lines, fmt.Sprintf("%s: %.1f", name, v))
		}
	}
	return lines
}
