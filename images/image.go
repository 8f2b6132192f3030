// Package images - Raster definition and conversion utilities for the stencil pipeline.
package images

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
)

// ErrInvalidDimensions is returned when a raster's sample buffer does not match its
// declared width and height, or when either dimension is not positive.
var ErrInvalidDimensions = errors.New("invalid raster dimensions")

// Raster represents a tightly packed RGBA pixel buffer.
//
// Pix holds Width*Height pixels in row-major order, 4 samples per pixel (R, G, B, A).
// There is no stride padding: the sample for (x, y, c) lives at (y*Width+x)*4+c.
type Raster struct {
	// The width of the raster in pixels.
	Width int `json:"width" yaml:"width"`
	// The height of the raster in pixels.
	Height int `json:"height" yaml:"height"`
	// The RGBA samples of the raster.
	Pix []uint8 `json:"pix" yaml:"pix"`
}

// NewRaster allocates a zeroed raster of the given size.
//
// Arguments:
// - width: The width of the raster in pixels.
// - height: The height of the raster in pixels.
//
// Returns:
// - The new raster.
// - ErrInvalidDimensions if either dimension is not positive.
func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%dx%d", width, height)
	}
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}, nil
}

// Validate checks that the raster is non-empty and that len(Pix) == Width*Height*4.
func (r *Raster) Validate() error {
	if r == nil {
		return errors.Wrap(ErrInvalidDimensions, "raster is nil")
	}
	if r.Width <= 0 || r.Height <= 0 {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d", r.Width, r.Height)
	}
	if want := r.Width * r.Height * 4; len(r.Pix) != want {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d raster has %d samples, want %d",
			r.Width, r.Height, len(r.Pix), want)
	}
	return nil
}

// SameSize reports whether r and o have identical dimensions.
func (r *Raster) SameSize(o *Raster) bool {
	return r.Width == o.Width && r.Height == o.Height
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	pix := make([]uint8, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{Width: r.Width, Height: r.Height, Pix: pix}
}

// Offset returns the index of the first sample of pixel (x, y).
func (r *Raster) Offset(x, y int) int {
	return (y*r.Width + x) * 4
}

// String implements fmt.Stringer.
func (r *Raster) String() string {
	return fmt.Sprintf("Raster(%dx%d)", r.Width, r.Height)
}

// Bounds returns the raster extent as an image.Rectangle anchored at the origin.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}
