// Intensity histograms rendered for the info panel
package metrics

import (
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"mdna-viewer/internal/core"
)

// DefaultBins is the histogram resolution used by the info panel
const DefaultBins = 256

// Histogram holds sample counts over equal-width intensity bins. Edges has
// one more entry than Counts.
type Histogram struct {
	Edges  []float64
	Counts []float64
}

// Total returns the number of binned samples
func (h Histogram) Total() float64 {
	return floats.Sum(h.Counts)
}

// HistogramImage draws the cached display histogram of s with the window
// bounds as dashed markers into a wPx x hPx image. Only the markers depend
// on window.
func HistogramImage(ch core.Channel, s *Summary, window core.Window, fill color.Color, wPx, hPx float64) (image.Image, error) {
	if s == nil {
		return nil, ErrEmptyGrid
	}
	h := s.Display()
	if wPx < 1 || hPx < 1 {
		return nil, fmt.Errorf("histogram size %gx%g too small", wPx, hPx)
	}

	p := plot.New()
	styleFonts(p)
	p.Title.Text = ch.String() + " intensities"
	p.X.Label.Text = "raw value"
	p.Y.Label.Text = "count"
	p.X.Min = 0
	p.X.Max = core.MaxIntensity + 1

	pts := make(plotter.XYs, len(h.Counts))
	for i, c := range h.Counts {
		pts[i].X = (h.Edges[i] + h.Edges[i+1]) / 2
		pts[i].Y = c
	}
	bars, err := plotter.NewHistogram(pts, len(pts))
	if err != nil {
		return nil, err
	}
	bars.FillColor = fill
	bars.LineStyle.Width = 0
	p.Add(bars)

	top := floats.Max(h.Counts)
	lo, hi := window.Bounds()
	for _, x := range []float64{lo, hi} {
		vline, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: top}})
		if err != nil {
			return nil, err
		}
		vline.Dashes = []vg.Length{
			vg.Points(6), // dash length
			vg.Points(4), // gap length
		}
		vline.Color = color.RGBA{A: 255}
		p.Add(vline)
	}

	// Render into an in-memory image, mapping pixels to vg units via DPI
	const dpi = 96
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(wPx)*vg.Inch/dpi, vg.Length(hPx)*vg.Inch/dpi),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))

	return c.Image(), nil
}

func styleFonts(p *plot.Plot) {
	for _, f := range []*text.Style{
		&p.Title.TextStyle,
		&p.X.Label.TextStyle,
		&p.Y.Label.TextStyle,
		&p.X.Tick.Label,
		&p.Y.Tick.Label,
	} {
		f.Font.Typeface = "Liberation"
		f.Font.Variant = "Sans"
	}
	p.Title.TextStyle.Font.Size = vg.Points(11)
	p.X.Tick.Label.Font.Size = vg.Points(8)
	p.Y.Tick.Label.Font.Size = vg.Points(8)
}
