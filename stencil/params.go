// Package stencil turns photographs into two-tone stencil rasters.
//
// A run applies three stages in fixed order: a 3x3 sharpening convolution blended with
// the original, a linear contrast stretch around mid-gray, and a style-dependent
// binarization into pure black strokes on a white background.
package stencil

import (
	"github.com/nvr-ai/go-stencil/images"
	"github.com/nvr-ai/go-stencil/images/kernels"
	"github.com/pkg/errors"
)

// Errors surfaced by the pipeline. They are the same values the kernels return, so
// errors.Is works regardless of which layer detected the problem.
var (
	ErrInvalidDimensions     = images.ErrInvalidDimensions
	ErrParameterOutOfRange   = kernels.ErrParameterOutOfRange
	ErrArithmeticSingularity = kernels.ErrArithmeticSingularity
	ErrUnknownStyle          = kernels.ErrUnknownStyle
)

// Style selects the binarization rule.
type Style = kernels.Style

// Binarization styles.
const (
	StyleStencil = kernels.StyleStencil
	StyleLineArt = kernels.StyleLineArt
	StylePattern = kernels.StylePattern
)

// ParseStyle parses a style name such as "stencil", "lineart" or "pattern".
func ParseStyle(name string) (Style, error) {
	return kernels.ParseStyle(name)
}

// Parameter domains.
const (
	MaxSharpness     = 1.0
	MaxContrast      = kernels.MaxContrast
	MaxThreshold     = 255.0
	MaxLineThickness = 100.0
)

// Params is the parameter set consumed by one pipeline run.
type Params struct {
	// Sharpness is the blend weight toward the sharpened image, in [0, 1].
	Sharpness float64 `json:"sharpness" yaml:"sharpness"`
	// Contrast is the contrast amount, in [0, 100]. 0 is neutral.
	Contrast float64 `json:"contrast" yaml:"contrast"`
	// Threshold is the luminance cut point, in [0, 255].
	Threshold float64 `json:"threshold" yaml:"threshold"`
	// LineThickness is the half-band width around Threshold for line art, in [0, 100].
	LineThickness float64 `json:"line_thickness" yaml:"line_thickness"`
	// Style is the binarization rule.
	Style Style `json:"style" yaml:"style"`
}

// Validate rejects any parameter outside its domain. Values are never clamped.
func (p Params) Validate() error {
	checks := []struct {
		name   string
		v, max float64
	}{
		{"sharpness", p.Sharpness, MaxSharpness},
		{"contrast", p.Contrast, MaxContrast},
		{"threshold", p.Threshold, MaxThreshold},
		{"line_thickness", p.LineThickness, MaxLineThickness},
	}
	for _, c := range checks {
		if !(c.v >= 0 && c.v <= c.max) {
			return errors.Wrapf(ErrParameterOutOfRange, "%s=%v not in [0, %v]", c.name, c.v, c.max)
		}
	}
	if !p.Style.Valid() {
		return errors.Wrapf(ErrUnknownStyle, "%d", int(p.Style))
	}
	return nil
}

// rule returns the binarization stage parameters.
func (p Params) rule() kernels.BinarizeRule {
	return kernels.BinarizeRule{
		Style:         p.Style,
		Threshold:     p.Threshold,
		LineThickness: p.LineThickness,
	}
}
