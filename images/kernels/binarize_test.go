package kernels

import (
	"math"
	"testing"

	"github.com/nvr-ai/go-stencil/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBinary fails unless every pixel is pure black or pure white.
func assertBinary(t *testing.T, r *images.Raster) {
	t.Helper()
	for i := 0; i < len(r.Pix); i += 4 {
		p := r.Pix[i : i+3]
		if (p[0] != 0 && p[0] != 255) || p[0] != p[1] || p[1] != p[2] {
			t.Fatalf("pixel %d is not binary: %v", i/4, p)
		}
	}
}

func TestBinarizeStencil(t *testing.T) {
	src := grayRaster([]uint8{0, 127, 128, 255})
	out, err := Binarize(src, BinarizeRule{Style: StyleStencil, Threshold: 128}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 255, 255}, []uint8{red(out, 0, 0), red(out, 1, 0), red(out, 2, 0), red(out, 3, 0)})
}

func TestBinarizeLineArtBand(t *testing.T) {
	src := grayRaster([]uint8{135, 150, 118, 121})
	rule := BinarizeRule{Style: StyleLineArt, Threshold: 128, LineThickness: 10}
	out, err := Binarize(src, rule, Options{})
	require.NoError(t, err)

	assert.Equal(t, uint8(0), red(out, 0, 0), "|135-128|=7 < 10 is marked")
	assert.Equal(t, uint8(255), red(out, 1, 0), "|150-128|=22 >= 10 is not")
	assert.Equal(t, uint8(255), red(out, 2, 0), "|118-128|=10 is on the open boundary")
	assert.Equal(t, uint8(0), red(out, 3, 0))
}

func TestBinarizeLineArtUsesChannelMean(t *testing.T) {
	// (120+135+150)/3 = 135.
	src := &images.Raster{Width: 1, Height: 1, Pix: []uint8{120, 135, 150, 255}}
	out, err := Binarize(src, BinarizeRule{Style: StyleLineArt, Threshold: 128, LineThickness: 10}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 0, 255}, out.Pix)
}

// TestBinarizePatternCheckerboard runs the pattern rule on a 2x2 checkerboard with
// black on the even cells and white on the odd cells. Even cells mark avg < 128 and odd
// cells mark avg >= 128, so all four pixels become strokes.
func TestBinarizePatternCheckerboard(t *testing.T) {
	src := grayRaster(
		[]uint8{0, 255},
		[]uint8{255, 0},
	)
	out, err := Binarize(src, BinarizeRule{Style: StylePattern, Threshold: 128}, Options{})
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.Equal(t, uint8(0), out.Pix[i*4], "pixel %d", i)
	}

	// A flat mid-gray field dithers into alternating cells.
	flat := grayRaster(
		[]uint8{100, 100, 100},
		[]uint8{100, 100, 100},
	)
	out, err = Binarize(flat, BinarizeRule{Style: StylePattern, Threshold: 128}, Options{})
	require.NoError(t, err)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			want := uint8(0)
			if (x+y)%2 == 1 {
				want = 255
			}
			assert.Equal(t, want, red(out, x, y), "(%d,%d)", x, y)
		}
	}
}

func TestBinarizeStencilMonotoneInThreshold(t *testing.T) {
	src := genRaster(50, 40, false)
	prev, err := Binarize(src, BinarizeRule{Style: StyleStencil, Threshold: 0}, Options{})
	require.NoError(t, err)

	for th := 5.0; th <= 255; th += 5 {
		next, err := Binarize(src, BinarizeRule{Style: StyleStencil, Threshold: th}, Options{})
		require.NoError(t, err)
		for i := 0; i < len(next.Pix); i += 4 {
			if prev.Pix[i] == 0 && next.Pix[i] != 0 {
				t.Fatalf("pixel %d turned white when threshold rose to %v", i/4, th)
			}
		}
		prev = next
	}
}

func TestBinarizeOutputIsBinaryForEveryStyle(t *testing.T) {
	src := genRaster(33, 17, true)
	for _, s := range Styles {
		out, err := Binarize(src, BinarizeRule{Style: s, Threshold: 140, LineThickness: 25}, Options{Parallel: true})
		require.NoError(t, err, s.String())
		assertBinary(t, out)
		assertAlphaPreserved(t, src, out)
	}
}

func TestBinarizeRejectsInvalidRules(t *testing.T) {
	src := genRaster(2, 2, false)
	cases := []struct {
		rule BinarizeRule
		want error
	}{
		{BinarizeRule{Style: Style(7), Threshold: 128}, ErrUnknownStyle},
		{BinarizeRule{Style: StyleStencil, Threshold: -1}, ErrParameterOutOfRange},
		{BinarizeRule{Style: StyleStencil, Threshold: 256}, ErrParameterOutOfRange},
		{BinarizeRule{Style: StyleLineArt, Threshold: 128, LineThickness: 101}, ErrParameterOutOfRange},
		{BinarizeRule{Style: StyleLineArt, Threshold: math.NaN()}, ErrParameterOutOfRange},
	}
	for _, tc := range cases {
		_, err := Binarize(src, tc.rule, Options{})
		assert.ErrorIs(t, err, tc.want, "%+v", tc.rule)
	}
}

func TestParseStyle(t *testing.T) {
	cases := map[string]Style{
		"stencil":  StyleStencil,
		"":         StyleStencil,
		"LineArt":  StyleLineArt,
		"line-art": StyleLineArt,
		"line_art": StyleLineArt,
		"pattern":  StylePattern,
	}
	for in, want := range cases {
		got, err := ParseStyle(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStyle("halftone")
	assert.ErrorIs(t, err, ErrUnknownStyle)

	var s Style
	require.NoError(t, s.UnmarshalText([]byte("pattern")))
	assert.Equal(t, StylePattern, s)
	text, err := StyleLineArt.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "lineart", string(text))
}
