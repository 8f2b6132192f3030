package images

import (
	"image"

	"github.com/nfnt/resize"
)

// Fit downscales img so that neither side exceeds maxDimension, keeping the aspect ratio.
// Images that already fit are returned unchanged; images are never upscaled.
//
// Arguments:
//   - img: The image to scale.
//   - maxDimension: The largest allowed width or height in pixels.
//
// Returns:
//   - image.Image: The scaled image, or img itself when no scaling is needed.
func Fit(img image.Image, maxDimension int) image.Image {
	if maxDimension <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxDimension && b.Dy() <= maxDimension {
		return img
	}
	// Thumbnail preserves the aspect ratio within the bounding box.
	return resize.Thumbnail(uint(maxDimension), uint(maxDimension), img, resize.Lanczos3)
}

// FitRaster is Fit for a Raster.
func FitRaster(r *Raster, maxDimension int) (*Raster, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if maxDimension <= 0 || (r.Width <= maxDimension && r.Height <= maxDimension) {
		return r.Clone(), nil
	}
	return FromImage(Fit(r.ToNRGBA(), maxDimension), nil)
}
