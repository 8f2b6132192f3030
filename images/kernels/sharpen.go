package kernels

import (
	"github.com/chewxy/math32"
	"github.com/nvr-ai/go-stencil/images"
	"github.com/pkg/errors"
)

// SharpenKernel is the 3x3 unity-gain sharpening kernel in row-major order.
// Its weights sum to 1, so a flat region keeps its brightness.
var SharpenKernel = [9]int32{
	0, -1, 0,
	-1, 5, -1,
	0, -1, 0,
}

// Sharpen convolves src with SharpenKernel and blends the result with the original:
//
//	out = factor*convolved + (1-factor)*original
//
// clamped to [0, 255] and rounded to nearest. Alpha is copied unchanged.
//
// Arguments:
//   - src: The raster to sharpen. It is never modified.
//   - factor: Blend weight toward the sharpened result, in [0, 1].
//   - opt: Edge mode, pool and parallelism.
//
// Returns:
//   - A new raster (drawn from opt.Pool when set).
//   - ErrInvalidDimensions or ErrParameterOutOfRange on bad input.
func Sharpen(src *images.Raster, factor float64, opt Options) (*images.Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	dst := opt.Pool.Get(src.Width, src.Height)
	if err := SharpenInto(dst, src, factor, opt); err != nil {
		opt.Pool.Put(dst)
		return nil, err
	}
	return dst, nil
}

// SharpenInto is Sharpen writing into a caller-provided dst of the same size.
//
// All nine taps of every pixel are read from src, so dst must be a different buffer;
// passing the same raster (or one sharing its samples) returns ErrAliasedBuffers.
func SharpenInto(dst, src *images.Raster, factor float64, opt Options) error {
	if err := checkPair(dst, src); err != nil {
		return err
	}
	if &dst.Pix[0] == &src.Pix[0] {
		return errors.Wrap(ErrAliasedBuffers, "sharpen")
	}
	if !inRange(factor, 0, 1) {
		return outOfRange("sharpness", factor, 0, 1)
	}

	if factor == 0 {
		copy(dst.Pix, src.Pix)
		return nil
	}

	w, h := src.Width, src.Height
	f := float32(factor)
	inv := 1 - f
	edge := opt.Edge

	forEachRow(h, opt.Parallel, func(y int) {
		var rows [3]int
		for ky := 0; ky < 3; ky++ {
			rows[ky] = mapCoord(y+ky-1, h, edge) * w
		}
		for x := 0; x < w; x++ {
			var cols [3]int
			for kx := 0; kx < 3; kx++ {
				cols[kx] = mapCoord(x+kx-1, w, edge)
			}

			var sr, sg, sb int32
			for ky := 0; ky < 3; ky++ {
				for kx := 0; kx < 3; kx++ {
					weight := SharpenKernel[ky*3+kx]
					if weight == 0 {
						continue
					}
					i := (rows[ky] + cols[kx]) * 4
					p := src.Pix[i : i+3 : i+3]
					sr += weight * int32(p[0])
					sg += weight * int32(p[1])
					sb += weight * int32(p[2])
				}
			}

			i := (y*w + x) * 4
			o := src.Pix[i : i+4 : i+4]
			d := dst.Pix[i : i+4 : i+4]
			d[0] = clampRound(f*float32(sr) + inv*float32(o[0]))
			d[1] = clampRound(f*float32(sg) + inv*float32(o[1]))
			d[2] = clampRound(f*float32(sb) + inv*float32(o[2]))
			d[3] = o[3]
		}
	})
	return nil
}

// clampRound saturates v to [0, 255] and rounds half up.
func clampRound(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math32.Floor(v + 0.5))
}
