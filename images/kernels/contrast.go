package kernels

import (
	"math"

	"github.com/nvr-ai/go-stencil/images"
	"github.com/pkg/errors"
)

const (
	// MaxContrast is the upper bound of the contrast amount.
	MaxContrast = 100
	// contrastPole is the contrast value at which the factor formula divides by zero.
	contrastPole = 259
	// singularityEpsilon is the smallest |contrastPole-contrast| accepted by ContrastFactor.
	singularityEpsilon = 1e-6
	// contrastMidpoint is the fixed point of the contrast stretch.
	contrastMidpoint = 128
)

// ContrastFactor returns the linear stretch factor for a contrast amount:
//
//	F = 259*(c+255) / (255*(259-c))
//
// The formula has a pole at c = 259. Amounts within singularityEpsilon of it return
// ErrArithmeticSingularity rather than an infinite or NaN factor; non-finite amounts
// return ErrParameterOutOfRange. ContrastFactor does not enforce [0, MaxContrast];
// ApplyContrast does.
func ContrastFactor(contrast float64) (float32, error) {
	if math.IsNaN(contrast) || math.IsInf(contrast, 0) {
		return 0, errors.Wrapf(ErrParameterOutOfRange, "contrast=%v is not finite", contrast)
	}
	denom := contrastPole - contrast
	if math.Abs(denom) < singularityEpsilon {
		return 0, errors.Wrapf(ErrArithmeticSingularity, "contrast=%v is at the pole %d", contrast, contrastPole)
	}
	return float32(contrastPole * (contrast + 255) / (255 * denom)), nil
}

// ContrastTable builds the 256-entry lookup table mapping a channel value v to
// clamp(F*(v-128)+128, 0, 255). The mapping depends on nothing but v, so a table
// replaces per-sample float math.
func ContrastTable(contrast float64) (*[256]uint8, error) {
	f, err := ContrastFactor(contrast)
	if err != nil {
		return nil, err
	}
	var lut [256]uint8
	for v := range lut {
		lut[v] = clampRound(f*float32(v-contrastMidpoint) + contrastMidpoint)
	}
	return &lut, nil
}

// ApplyContrast returns a new raster with the contrast stretch applied to R, G and B.
//
// Arguments:
//   - src: The raster to remap. It is never modified.
//   - contrast: Contrast amount in [0, MaxContrast].
//   - opt: Pool and parallelism (Edge is unused).
func ApplyContrast(src *images.Raster, contrast float64, opt Options) (*images.Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	dst := opt.Pool.Get(src.Width, src.Height)
	if err := ApplyContrastInto(dst, src, contrast, opt); err != nil {
		opt.Pool.Put(dst)
		return nil, err
	}
	return dst, nil
}

// ApplyContrastInto is ApplyContrast writing into dst. dst may be src.
func ApplyContrastInto(dst, src *images.Raster, contrast float64, opt Options) error {
	if err := checkPair(dst, src); err != nil {
		return err
	}
	if !inRange(contrast, 0, MaxContrast) {
		return outOfRange("contrast", contrast, 0, MaxContrast)
	}
	lut, err := ContrastTable(contrast)
	if err != nil {
		return err
	}

	w := src.Width
	forEachRow(src.Height, opt.Parallel, func(y int) {
		start := y * w * 4
		s := src.Pix[start : start+w*4]
		d := dst.Pix[start : start+w*4]
		for i := 0; i < len(s); i += 4 {
			d[i+0] = lut[s[i+0]]
			d[i+1] = lut[s[i+1]]
			d[i+2] = lut[s[i+2]]
			d[i+3] = s[i+3]
		}
	})
	return nil
}
