package algorithms

import (
	"errors"
	"fmt"
	"image"
)

// ErrSizeMismatch is returned when composited images differ in size
var ErrSizeMismatch = errors.New("images differ in size")

// Composite adds two colorized images byte by byte, saturating at 255.
// Alpha of the result is always opaque.
func Composite(a, b *image.RGBA) (*image.RGBA, error) {
	if a.Bounds().Size() != b.Bounds().Size() {
		return nil, fmt.Errorf("%w: %v vs %v", ErrSizeMismatch, a.Bounds().Size(), b.Bounds().Size())
	}

	size := a.Bounds().Size()
	out := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	for y := 0; y < size.Y; y++ {
		oa := a.PixOffset(a.Rect.Min.X, a.Rect.Min.Y+y)
		ob := b.PixOffset(b.Rect.Min.X, b.Rect.Min.Y+y)
		ra := a.Pix[oa : oa+size.X*4]
		rb := b.Pix[ob : ob+size.X*4]
		ro := out.Pix[y*out.Stride : y*out.Stride+size.X*4]
		for i := 0; i < len(ro); i += 4 {
			ro[i+0] = addSaturate(ra[i+0], rb[i+0])
			ro[i+1] = addSaturate(ra[i+1], rb[i+1])
			ro[i+2] = addSaturate(ra[i+2], rb[i+2])
			ro[i+3] = 255
		}
	}
	return out, nil
}

// CompositeAll folds any number of layers with Composite
func CompositeAll(images ...*image.RGBA) (*image.RGBA, error) {
	if len(images) == 0 {
		return nil, errors.New("nothing to composite")
	}

	out := images[0]
	if len(images) == 1 {
		return Composite(out, image.NewRGBA(out.Bounds()))
	}
	for _, img := range images[1:] {
		var err error
		if out, err = Composite(out, img); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func addSaturate(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}
