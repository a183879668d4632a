// Concrete implementations of channel statistics
package metrics

import (
	"mdna-viewer/internal/core"
)

// Minimum is the smallest raw sample
type Minimum struct{}

// NewMinimum creates a new Minimum metric
func NewMinimum() *Minimum {
	return &Minimum{}
}

func (m *Minimum) Calculate(s *Summary, _ core.Window) (float64, error) {
	if s == nil {
		return 0, ErrEmptyGrid
	}
	return s.Min, nil
}

func (m *Minimum) GetName() string {
	return "Minimum"
}

func (m *Minimum) GetDescription() string {
	return "Smallest raw 16-bit intensity"
}

// Maximum is the largest raw sample
type Maximum struct{}

// NewMaximum creates a new Maximum metric
func NewMaximum() *Maximum {
	return &Maximum{}
}

func (m *Maximum) Calculate(s *Summary, _ core.Window) (float64, error) {
	if s == nil {
		return 0, ErrEmptyGrid
	}
	return s.Max, nil
}

func (m *Maximum) GetName() string {
	return "Maximum"
}

func (m *Maximum) GetDescription() string {
	return "Largest raw 16-bit intensity"
}

// Mean is the average raw sample
type Mean struct{}

// NewMean creates a new Mean metric
func NewMean() *Mean {
	return &Mean{}
}

func (m *Mean) Calculate(s *Summary, _ core.Window) (float64, error) {
	if s == nil {
		return 0, ErrEmptyGrid
	}
	return s.Mean, nil
}

func (m *Mean) GetName() string {
	return "Mean"
}

func (m *Mean) GetDescription() string {
	return "Average raw intensity"
}

// StdDev is the population standard deviation of the raw samples
type StdDev struct{}

// NewStdDev creates a new StdDev metric
func NewStdDev() *StdDev {
	return &StdDev{}
}

func (d *StdDev) Calculate(s *Summary, _ core.Window) (float64, error) {
	if s == nil {
		return 0, ErrEmptyGrid
	}
	return s.StdDev, nil
}

func (d *StdDev) GetName() string {
	return "Standard deviation"
}

func (d *StdDev) GetDescription() string {
	return "Population standard deviation of raw intensities"
}

// ClippedLow is the fraction of samples at or below the window's lower
// bound, which all display as black
type ClippedLow struct{}

// NewClippedLow creates a new ClippedLow metric
func NewClippedLow() *ClippedLow {
	return &ClippedLow{}
}

func (c *ClippedLow) Calculate(s *Summary, window core.Window) (float64, error) {
	if s == nil {
		return 0, ErrEmptyGrid
	}
	return s.ClippedLow(window), nil
}

func (c *ClippedLow) GetName() string {
	return "Clipped low"
}

func (c *ClippedLow) GetDescription() string {
	return "Fraction of samples at or below the window's lower bound"
}

// ClippedHigh is the fraction of samples at or above the window's upper
// bound, which all display at full brightness
type ClippedHigh struct{}

// NewClippedHigh creates a new ClippedHigh metric
func NewClippedHigh() *ClippedHigh {
	return &ClippedHigh{}
}

func (c *ClippedHigh) Calculate(s *Summary, window core.Window) (float64, error) {
	if s == nil {
		return 0, ErrEmptyGrid
	}
	return s.ClippedHigh(window), nil
}

func (c *ClippedHigh) GetName() string {
	return "Clipped high"
}

func (c *ClippedHigh) GetDescription() string {
	return "Fraction of samples at or above the window's upper bound"
}
