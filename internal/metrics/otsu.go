package metrics

import (
	"mdna-viewer/internal/core"
)

// OtsuThreshold suggests a lower window bound: the intensity where Otsu's
// method splits the display histogram into a dark and a bright group. It
// is a hint for setting contrast and ignores the current window.
type OtsuThreshold struct{}

// NewOtsuThreshold creates a new OtsuThreshold metric
func NewOtsuThreshold() *OtsuThreshold {
	return &OtsuThreshold{}
}

func (o *OtsuThreshold) Calculate(s *Summary, _ core.Window) (float64, error) {
	if s == nil {
		return 0, ErrEmptyGrid
	}
	return s.Otsu, nil
}

func (o *OtsuThreshold) GetName() string {
	return "Otsu threshold"
}

func (o *OtsuThreshold) GetDescription() string {
	return "Suggested lower window bound separating dark and bright pixels"
}

// otsuThreshold maximises the between-class variance over h and returns
// the upper edge of the dark group
func otsuThreshold(h Histogram) float64 {
	total := h.Total()
	sum := 0.0
	for i, c := range h.Counts {
		sum += float64(i) * c / total
	}

	sumB := 0.0
	wB := 0.0
	maximum := 0.0
	level := 0

	for t, c := range h.Counts {
		p := c / total
		wB += p
		if wB == 0 {
			continue
		}

		wF := 1.0 - wB
		if wF <= 1e-12 {
			break
		}

		sumB += float64(t) * p
		mB := sumB / wB
		mF := (sum - sumB) / wF

		between := wB * wF * (mB - mF) * (mB - mF)
		if between > maximum {
			level = t
			maximum = between
		}
	}

	return h.Edges[level+1]
}
