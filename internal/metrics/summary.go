package metrics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"mdna-viewer/internal/core"
)

// ErrEmptyGrid is returned for grids without samples
var ErrEmptyGrid = errors.New("empty channel grid")

const levels = core.MaxIntensity + 1

// intensities[v] == v, the sample values the per-level counts weight
var intensities = floats.Span(make([]float64, levels), 0, core.MaxIntensity)

// Summary holds everything about a grid that does not depend on the
// contrast window. It is built in one pass over the samples when a pair is
// installed; window changes only read from it.
type Summary struct {
	N      float64
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Otsu   float64

	counts  []float64 // samples per raw intensity
	atMost  []float64 // atMost[v] = samples with value <= v
	display Histogram
}

// NewSummary counts every sample of grid once
func NewSummary(grid *core.ChannelGrid) (*Summary, error) {
	if grid == nil || len(grid.Pix) == 0 {
		return nil, ErrEmptyGrid
	}

	s := &Summary{
		N:      float64(len(grid.Pix)),
		counts: make([]float64, levels),
		atMost: make([]float64, levels),
	}
	for _, v := range grid.Pix {
		s.counts[v]++
	}
	floats.CumSum(s.atMost, s.counts)

	for v, c := range s.counts {
		if c > 0 {
			s.Min = float64(v)
			break
		}
	}
	for v := core.MaxIntensity; v >= 0; v-- {
		if s.counts[v] > 0 {
			s.Max = float64(v)
			break
		}
	}
	s.Mean, s.StdDev = stat.PopMeanStdDev(intensities, s.counts)

	display, err := s.Histogram(DefaultBins)
	if err != nil {
		return nil, err
	}
	s.display = display
	s.Otsu = otsuThreshold(display)

	return s, nil
}

// Histogram folds the per-level counts into bins equal ranges over
// [0, 65536)
func (s *Summary) Histogram(bins int) (Histogram, error) {
	if bins < 1 || bins > levels {
		return Histogram{}, fmt.Errorf("bin count %d outside [1, %d]", bins, levels)
	}

	h := Histogram{
		Edges:  floats.Span(make([]float64, bins+1), 0, levels),
		Counts: make([]float64, bins),
	}
	for v, c := range s.counts {
		if c != 0 {
			h.Counts[v*bins/levels] += c
		}
	}
	return h, nil
}

// Display returns the DefaultBins histogram shown in the info panel
func (s *Summary) Display() Histogram {
	return s.display
}

// ClippedLow is the fraction of samples at or below the window's lower
// bound
func (s *Summary) ClippedLow(window core.Window) float64 {
	lo, _ := window.Bounds()
	v := int(math.Floor(lo))
	if v < 0 {
		return 0
	}
	return s.atMost[min(v, core.MaxIntensity)] / s.N
}

// ClippedHigh is the fraction of samples at or above the window's upper
// bound
func (s *Summary) ClippedHigh(window core.Window) float64 {
	_, hi := window.Bounds()
	v := int(math.Ceil(hi))
	switch {
	case v <= 0:
		return 1
	case v > core.MaxIntensity:
		return 0
	}
	return (s.N - s.atMost[v-1]) / s.N
}
