package viewport

import (
	"image"
	"math"

	"github.com/nfnt/resize"
)

// fit returns the scale that fits a crop into a pane and the offset of the
// centered result
func fit(crop image.Rectangle, paneW, paneH float64) (scale, offX, offY float64) {
	cw, ch := float64(crop.Dx()), float64(crop.Dy())
	if cw <= 0 || ch <= 0 || paneW <= 0 || paneH <= 0 {
		return 0, 0, 0
	}
	scale = math.Min(paneW/cw, paneH/ch)
	offX = (paneW - cw*scale) / 2
	offY = (paneH - ch*scale) / 2
	return scale, offX, offY
}

// Render crops src to the state's visible region and scales it to fit a
// paneW x paneH pixel area, keeping the aspect ratio. Nearest-neighbour
// sampling keeps individual pixels visible when zoomed in.
func Render(src image.Image, st *State, paneW, paneH int) image.Image {
	crop := st.Crop().Add(src.Bounds().Min).Intersect(src.Bounds())
	scale, _, _ := fit(crop, float64(paneW), float64(paneH))
	if scale == 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	w := uint(math.Max(1, math.Round(float64(crop.Dx())*scale)))
	h := uint(math.Max(1, math.Round(float64(crop.Dy())*scale)))

	sub, ok := src.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return resize.Resize(w, h, src, resize.NearestNeighbor)
	}
	return resize.Resize(w, h, sub.SubImage(crop), resize.NearestNeighbor)
}

// ToSource maps a point inside a paneW x paneH pane to source coordinates.
// The second result is false when the point falls outside the image.
func ToSource(st *State, paneW, paneH float64, px, py float64) (Point, bool) {
	crop := st.Crop()
	scale, offX, offY := fit(crop, paneW, paneH)
	if scale == 0 {
		return Point{}, false
	}

	p := Point{
		X: float64(crop.Min.X) + (px-offX)/scale,
		Y: float64(crop.Min.Y) + (py-offY)/scale,
	}
	w, h := st.Source()
	inside := p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h
	return p, inside
}

// PaneDelta converts a drag distance in pane units into source units
func PaneDelta(st *State, paneW, paneH float64, dx, dy float64) (float64, float64) {
	scale, _, _ := fit(st.Crop(), paneW, paneH)
	if scale == 0 {
		return 0, 0
	}
	return dx / scale, dy / scale
}
