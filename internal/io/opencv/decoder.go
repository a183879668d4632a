// OpenCV backed decoding of 16-bit channel images
package opencv

import (
	"fmt"

	"gocv.io/x/gocv"

	"mdna-viewer/internal/core"
	"mdna-viewer/internal/io"
)

// Decoder reads any raster OpenCV understands, keeping the native bit depth
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (Decoder) Name() string {
	return "opencv"
}

func (Decoder) Decode(path string) (*core.ChannelGrid, error) {
	if err := io.CheckHeader(path); err != nil {
		return nil, err
	}

	mat := gocv.IMRead(path, gocv.IMReadUnchanged)
	defer mat.Close()

	if mat.Empty() {
		return nil, core.NewLoadError(path, core.UnsupportedFormat, fmt.Errorf("opencv could not read image"))
	}
	if mat.Type() != gocv.MatTypeCV16UC1 {
		return nil, core.NewLoadError(path, core.BitDepth,
			fmt.Errorf("mat type %v with %d channels", mat.Type(), mat.Channels()))
	}

	width, height := mat.Cols(), mat.Rows()
	src := &mat
	if !mat.IsContinuous() {
		cont := mat.Clone()
		defer cont.Close()
		src = &cont
	}

	data, err := src.DataPtrUint16()
	if err != nil {
		return nil, core.NewLoadError(path, core.Corrupt, err)
	}
	if len(data) < width*height {
		return nil, core.NewLoadError(path, core.Corrupt,
			fmt.Errorf("got %d samples for %dx%d", len(data), width, height))
	}

	grid := core.NewChannelGrid(width, height)
	copy(grid.Pix, data[:width*height])
	grid.Path = path
	return grid, nil
}
