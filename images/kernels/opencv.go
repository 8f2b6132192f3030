//go:build gocv

package kernels

import (
	"image"

	"github.com/nvr-ai/go-stencil/images"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// SharpenOpenCV is Sharpen implemented with OpenCV's Filter2D and AddWeighted.
//
// The convolution runs in float32 so the sharpened value is blended before it is
// saturated, matching Sharpen. BorderReplicate is OpenCV's name for edge clamping.
// Only available when built with the gocv tag.
func SharpenOpenCV(src *images.Raster, factor float64) (*images.Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if !inRange(factor, 0, 1) {
		return nil, outOfRange("sharpness", factor, 0, 1)
	}

	in, err := gocv.NewMatFromBytes(src.Height, src.Width, gocv.MatTypeCV8UC4, src.Pix)
	if err != nil {
		return nil, errors.Wrap(err, "wrap source")
	}
	defer in.Close()

	inF := gocv.NewMat()
	defer inF.Close()
	in.ConvertTo(&inF, gocv.MatTypeCV32FC4)

	kernel := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
	defer kernel.Close()
	for i, wgt := range SharpenKernel {
		kernel.SetFloatAt(i/3, i%3, float32(wgt))
	}

	convolved := gocv.NewMat()
	defer convolved.Close()
	gocv.Filter2D(inF, &convolved, -1, kernel, image.Pt(-1, -1), 0, gocv.BorderReplicate)

	blended := gocv.NewMat()
	defer blended.Close()
	gocv.AddWeighted(convolved, factor, inF, 1-factor, 0, &blended)

	out := gocv.NewMat()
	defer out.Close()
	blended.ConvertTo(&out, gocv.MatTypeCV8UC4)

	dst := &images.Raster{Width: src.Width, Height: src.Height, Pix: out.ToBytes()}
	if err := dst.Validate(); err != nil {
		return nil, errors.Wrap(err, "opencv output")
	}
	// The kernel also touched alpha; restore it.
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = src.Pix[i]
	}
	return dst, nil
}
