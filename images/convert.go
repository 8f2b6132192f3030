package images

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
)

// FromImage converts any image.Image to a Raster with non-premultiplied RGBA samples.
//
// When background is non-nil the source is composited over a solid fill of that color,
// so transparent regions take the background's value instead of black. Passing nil copies
// the source samples as-is (alpha preserved).
//
// Arguments:
// - src: The image to convert.
// - background: Optional fill color placed under the image.
//
// Returns:
// - The converted raster.
// - ErrInvalidDimensions if the image is empty.
//
// Example:
//
//	r, err := images.FromImage(decoded, color.White)
func FromImage(src image.Image, background color.Color) (*Raster, error) {
	if src == nil {
		return nil, errors.Wrap(ErrInvalidDimensions, "image is nil")
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%dx%d", b.Dx(), b.Dy())
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if n, ok := src.(*image.NRGBA); ok && background == nil {
		// Straight copy; going through draw would premultiply and lose precision at low alpha.
		rowLen := b.Dx() * 4
		for y := 0; y < b.Dy(); y++ {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowLen], n.Pix[off:off+rowLen])
		}
	} else if background != nil {
		xdraw.Draw(dst, dst.Rect, &image.Uniform{C: background}, image.Point{}, xdraw.Src)
		xdraw.Draw(dst, dst.Rect, src, b.Min, xdraw.Over)
	} else {
		xdraw.Draw(dst, dst.Rect, src, b.Min, xdraw.Src)
	}

	// NewNRGBA anchored at the origin has Stride == 4*width, so Pix is already tightly packed.
	return &Raster{Width: b.Dx(), Height: b.Dy(), Pix: dst.Pix}, nil
}

// ToNRGBA copies the raster into a new *image.NRGBA suitable for the standard encoders.
func (r *Raster) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(r.Bounds())
	copy(img.Pix, r.Pix)
	return img
}
