package kernels

import (
	"strings"

	"github.com/chewxy/math32"
	"github.com/nvr-ai/go-stencil/images"
	"github.com/pkg/errors"
)

// Style selects the binarization rule.
type Style int

const (
	// StyleStencil marks pixels darker than the threshold, producing filled regions.
	StyleStencil Style = iota
	// StyleLineArt marks pixels whose mean lies within LineThickness of the threshold,
	// producing a band along the threshold isoline.
	StyleLineArt
	// StylePattern applies the stencil rule on even checkerboard cells and its inverse on
	// odd cells, producing a dithered halftone.
	StylePattern
)

// Styles lists every defined Style in declaration order.
var Styles = []Style{StyleStencil, StyleLineArt, StylePattern}

// String implements fmt.Stringer.
func (s Style) String() string {
	switch s {
	case StyleStencil:
		return "stencil"
	case StyleLineArt:
		return "lineart"
	case StylePattern:
		return "pattern"
	}
	return "unknown"
}

// Valid reports whether s is a defined style.
func (s Style) Valid() bool {
	return s >= StyleStencil && s <= StylePattern
}

// ParseStyle parses a style name. "line-art" and "line_art" are accepted for line art.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "stencil", "":
		return StyleStencil, nil
	case "lineart", "line-art", "line_art":
		return StyleLineArt, nil
	case "pattern":
		return StylePattern, nil
	}
	return 0, errors.Wrapf(ErrUnknownStyle, "%q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.Wrapf(ErrUnknownStyle, "%d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(text []byte) error {
	v, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// BinarizeRule holds the parameters of the binarization stage.
type BinarizeRule struct {
	Style         Style
	Threshold     float64 // Luminance cut point in [0, 255].
	LineThickness float64 // Half-band width in [0, 100]; line art only.
}

// Validate checks the rule's domain.
func (r BinarizeRule) Validate() error {
	if !r.Style.Valid() {
		return errors.Wrapf(ErrUnknownStyle, "%d", int(r.Style))
	}
	if !inRange(r.Threshold, 0, 255) {
		return outOfRange("threshold", r.Threshold, 0, 255)
	}
	if !inRange(r.LineThickness, 0, 100) {
		return outOfRange("line_thickness", r.LineThickness, 0, 100)
	}
	return nil
}

// Mark reports whether a pixel at (x, y) with channel mean avg is a foreground stroke.
func (r BinarizeRule) Mark(x, y int, avg float32) bool {
	t := float32(r.Threshold)
	switch r.Style {
	case StyleLineArt:
		return math32.Abs(avg-t) < float32(r.LineThickness)
	case StylePattern:
		if (x+y)&1 == 1 {
			return avg >= t
		}
		return avg < t
	default:
		return avg < t
	}
}

// Mean returns the unweighted channel mean (R+G+B)/3 used as the grayscale proxy.
func Mean(r, g, b uint8) float32 {
	return float32(int(r)+int(g)+int(b)) / 3
}

// Binarize returns a new raster where every pixel is pure black (marked) or pure white,
// with alpha unchanged.
//
// Arguments:
//   - src: The raster to binarize. It is never modified.
//   - rule: Style, threshold and line thickness.
//   - opt: Pool and parallelism (Edge is unused).
func Binarize(src *images.Raster, rule BinarizeRule, opt Options) (*images.Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	dst := opt.Pool.Get(src.Width, src.Height)
	if err := BinarizeInto(dst, src, rule, opt); err != nil {
		opt.Pool.Put(dst)
		return nil, err
	}
	return dst, nil
}

// BinarizeInto is Binarize writing into dst. dst may be src.
func BinarizeInto(dst, src *images.Raster, rule BinarizeRule, opt Options) error {
	if err := checkPair(dst, src); err != nil {
		return err
	}
	if err := rule.Validate(); err != nil {
		return err
	}

	w := src.Width
	forEachRow(src.Height, opt.Parallel, func(y int) {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			s := src.Pix[i : i+4 : i+4]
			v := uint8(255)
			if rule.Mark(x, y, Mean(s[0], s[1], s[2])) {
				v = 0
			}
			d := dst.Pix[i : i+4 : i+4]
			a := s[3]
			d[0], d[1], d[2], d[3] = v, v, v, a
		}
	})
	return nil
}
