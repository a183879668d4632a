package layers

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"mdna-viewer/internal/algorithms"
	"mdna-viewer/internal/core"
	"mdna-viewer/internal/io"
)

func newStack(t *testing.T, mode WindowMode) *Stack {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	return NewStack(nil, mode, logger)
}

func filledGrid(w, h int, v uint16) *core.ChannelGrid {
	g := core.NewChannelGrid(w, h)
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

func TestSetGridsRejectsMismatchAndKeepsState(t *testing.T) {
	s := newStack(t, WindowFull)
	assert.False(t, s.HasImages())

	cy3 := filledGrid(4, 4, 1000)
	cy5 := filledGrid(4, 4, 2000)
	require.NoError(t, s.SetGrids(cy3, cy5))
	assert.True(t, s.HasImages())

	err := s.SetGrids(filledGrid(4, 4, 1), filledGrid(5, 4, 1))
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	assert.Same(t, cy3, s.Layer(core.Cy3).Grid)
	assert.Same(t, cy5, s.Layer(core.Cy5).Grid)

	assert.Error(t, s.SetGrids(nil, cy5))
	assert.ErrorIs(t, s.SetGrids(&core.ChannelGrid{}, &core.ChannelGrid{}), core.ErrCorrupt)
	assert.Same(t, cy3, s.Layer(core.Cy3).Grid)
}

func TestDefaultWindows(t *testing.T) {
	cy3 := core.NewChannelGrid(2, 1)
	cy3.Pix = []uint16{1000, 3000}
	cy5 := core.NewChannelGrid(2, 1)
	cy5.Pix = []uint16{10, 20}

	full := newStack(t, WindowFull)
	require.NoError(t, full.SetGrids(cy3, cy5))
	assert.Equal(t, core.FullWindow(), full.Window(core.Cy3))

	auto := newStack(t, WindowAuto)
	require.NoError(t, auto.SetGrids(cy3, cy5))
	assert.Equal(t, core.Window{Center: 2000, Width: 2000}, auto.Window(core.Cy3))
	assert.Equal(t, core.Window{Center: 15, Width: 10}, auto.Window(core.Cy5))

	auto.ResetWindow(core.Cy5, WindowFull)
	assert.Equal(t, core.FullWindow(), auto.Window(core.Cy5))
	assert.Equal(t, core.Window{Center: 2000, Width: 2000}, auto.Window(core.Cy3))

	auto.ResetWindows(WindowFull)
	assert.Equal(t, core.FullWindow(), auto.Window(core.Cy3))
}

func TestCompositeFollowsWindowChanges(t *testing.T) {
	s := newStack(t, WindowFull)
	require.NoError(t, s.SetGrids(filledGrid(3, 3, 30000), filledGrid(3, 3, 30000)))

	s.SetWindow(core.Cy3, core.NewWindow(30000, 10000))
	s.SetWindow(core.Cy5, core.NewWindow(0, 1))

	comp, err := s.Composite()
	require.NoError(t, err)
	want := color.RGBA{
		R: algorithms.Intensity(30000, core.NewWindow(0, 1)),
		G: algorithms.Intensity(30000, core.NewWindow(30000, 10000)),
		A: 255,
	}
	assert.Equal(t, want, comp.RGBAAt(1, 1))
	assert.Equal(t, uint8(255), want.R)

	again, err := s.Composite()
	require.NoError(t, err)
	assert.Same(t, comp, again, "unchanged windows reuse the composite")

	s.SetWindow(core.Cy5, core.NewWindow(65535, 1))
	comp, err = s.Composite()
	require.NoError(t, err)
	assert.Equal(t, uint8(0), comp.RGBAAt(0, 0).R)
}

func TestSummaryCachedAcrossWindowChanges(t *testing.T) {
	s := newStack(t, WindowFull)
	cy3 := core.NewChannelGrid(4, 1)
	cy3.Pix = []uint16{0, 1000, 3000, 65535}
	require.NoError(t, s.SetGrids(cy3, filledGrid(4, 1, 9)))

	sum := s.Layer(core.Cy3).Summary
	require.NotNil(t, sum)
	assert.Equal(t, 65535.0, sum.Max)
	assert.Equal(t, 0.25, sum.ClippedLow(s.Window(core.Cy3)))

	s.SetWindow(core.Cy3, core.WindowFromBounds(1000, 3000))
	s.SetWindow(core.Cy3, core.NewWindow(20000, 500))
	s.ResetWindow(core.Cy3, WindowAuto)
	assert.Same(t, sum, s.Layer(core.Cy3).Summary, "window changes reuse the cached statistics")

	s.SetWindow(core.Cy3, core.WindowFromBounds(1000, 3000))
	assert.Equal(t, 0.5, sum.ClippedLow(s.Window(core.Cy3)))
	assert.Equal(t, 0.5, sum.ClippedHigh(s.Window(core.Cy3)))

	// A failed install keeps the old statistics
	assert.Error(t, s.SetGrids(filledGrid(4, 1, 1), filledGrid(2, 1, 1)))
	assert.Same(t, sum, s.Layer(core.Cy3).Summary)

	require.NoError(t, s.SetGrids(filledGrid(4, 1, 5), filledGrid(4, 1, 5)))
	assert.NotSame(t, sum, s.Layer(core.Cy3).Summary)
	assert.Equal(t, 5.0, s.Layer(core.Cy3).Summary.Max)

	s.Clear()
	assert.Nil(t, s.Layer(core.Cy3).Summary)
}

func writeTIFF16(t *testing.T, path string, size int, value func(x, y int) uint16) {
	t.Helper()
	img := image.NewGray16(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := value(x, y)
			off := img.PixOffset(x, y)
			img.Pix[off] = byte(v >> 8)
			img.Pix[off+1] = byte(v)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, tiff.Encode(f, img, nil))
}

func TestLoadPairToComposite512(t *testing.T) {
	const size = 512
	dir := t.TempDir()
	cy3Path := filepath.Join(dir, "cy3.tif")
	cy5Path := filepath.Join(dir, "cy5.tif")
	cy3Value := func(x, y int) uint16 { return uint16((x*131 + y*127) % 65536) }
	cy5Value := func(x, y int) uint16 { return uint16((x*y*7 + 11*x) % 65536) }
	writeTIFF16(t, cy3Path, size, cy3Value)
	writeTIFF16(t, cy5Path, size, cy5Value)

	logger, _ := logtest.NewNullLogger()
	cy3, cy5, err := io.NewImageLoader(io.NewNativeDecoder(), logger).LoadPair(cy3Path, cy5Path)
	require.NoError(t, err)

	s := newStack(t, WindowFull)
	require.NoError(t, s.SetGrids(cy3, cy5))
	green := core.NewWindow(32768, 10000)
	red := core.NewWindow(20000, 5000)
	s.SetWindow(core.Cy3, green)
	s.SetWindow(core.Cy5, red)

	out, err := s.Composite()
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, size, size), out.Bounds())

	for y := 0; y < size; y += 7 {
		for x := 0; x < size; x += 5 {
			want := color.RGBA{
				R: algorithms.Intensity(cy5Value(x, y), red),
				G: algorithms.Intensity(cy3Value(x, y), green),
				A: 255,
			}
			require.Equal(t, want, out.RGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestSetWindowClamps(t *testing.T) {
	s := newStack(t, WindowFull)
	s.SetWindow(core.Cy3, core.Window{Center: -4, Width: 0})
	assert.Equal(t, core.Window{Center: 0, Width: 1}, s.Window(core.Cy3))
}

func TestHiddenLayerContributesBlack(t *testing.T) {
	s := newStack(t, WindowFull)
	require.NoError(t, s.SetGrids(filledGrid(2, 2, 65535), filledGrid(2, 2, 65535)))

	s.SetVisible(core.Cy5, false)
	comp, err := s.Composite()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, comp.RGBAAt(0, 0))

	s.SetVisible(core.Cy3, false)
	comp, err = s.Composite()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{A: 255}, comp.RGBAAt(0, 0))
}

func TestSampleAndClear(t *testing.T) {
	s := newStack(t, WindowFull)
	_, ok := s.Sample(0, 0)
	assert.False(t, ok)

	cy3 := filledGrid(4, 2, 7)
	cy3.Pix[1*4+3] = 65535
	require.NoError(t, s.SetGrids(cy3, filledGrid(4, 2, 9)))

	sample, ok := s.Sample(3, 1)
	require.True(t, ok)
	assert.Equal(t, uint16(65535), sample.Cy3)
	assert.Equal(t, uint16(9), sample.Cy5)
	assert.Equal(t, uint8(255), sample.Composite.G)
	assert.Contains(t, sample.String(), "Cy3=65535")

	_, ok = s.Sample(4, 0)
	assert.False(t, ok)

	s.Clear()
	assert.False(t, s.HasImages())
	assert.Nil(t, s.Colorized(core.Cy3))
	_, err := s.Composite()
	assert.Error(t, err)
}

func TestCustomRamps(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	s := NewStack(map[core.Channel]algorithms.Ramp{core.Cy3: {B: 255}}, WindowFull, logger)
	assert.Equal(t, algorithms.Ramp{B: 255}, s.Layer(core.Cy3).Ramp)
	assert.Equal(t, algorithms.Red, s.Layer(core.Cy5).Ramp)
}
