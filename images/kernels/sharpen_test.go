package kernels

import (
	"math"
	"testing"

	"github.com/nvr-ai/go-stencil/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharpenFactorZeroIsIdentity(t *testing.T) {
	src := genRaster(17, 9, true)
	out, err := Sharpen(src, 0, Options{})
	require.NoError(t, err)
	assert.Equal(t, src.Pix, out.Pix)
}

func TestSharpenUniformRasterUnchanged(t *testing.T) {
	src := grayRaster(
		[]uint8{90, 90, 90, 90},
		[]uint8{90, 90, 90, 90},
		[]uint8{90, 90, 90, 90},
	)
	out, err := Sharpen(src, 1, Options{})
	require.NoError(t, err)
	assert.Equal(t, src.Pix, out.Pix, "unity-gain kernel must keep flat regions")
}

// TestSharpenClampsAtEdges checks a bright center on a flat 3x3 field. Out-of-range taps
// repeat the border pixel, so the corner sees only background and stays put.
func TestSharpenClampsAtEdges(t *testing.T) {
	src := grayRaster(
		[]uint8{50, 50, 50},
		[]uint8{50, 100, 50},
		[]uint8{50, 50, 50},
	)

	full, err := Sharpen(src, 1, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint8(255), red(full, 1, 1), "5*100-4*50=300 saturates")
	assert.Equal(t, uint8(0), red(full, 1, 0), "edge neighbor of the peak")
	assert.Equal(t, uint8(50), red(full, 0, 0), "corner")

	half, err := Sharpen(src, 0.5, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint8(200), red(half, 1, 1), "0.5*300+0.5*100")
	assert.Equal(t, uint8(25), red(half, 1, 0), "0.5*0+0.5*50")
	assert.Equal(t, uint8(50), red(half, 0, 0))
}

func TestSharpenDegenerateShapes(t *testing.T) {
	one := grayRaster([]uint8{77})
	out, err := Sharpen(one, 1, Options{})
	require.NoError(t, err)
	assert.Equal(t, one.Pix, out.Pix, "1x1 raster only sees itself")

	row := grayRaster([]uint8{10, 20, 30})
	out, err = Sharpen(row, 1, Options{})
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 20, 40}, []uint8{red(out, 0, 0), red(out, 1, 0), red(out, 2, 0)})

	col := grayRaster([]uint8{10}, []uint8{20}, []uint8{30})
	out, err = Sharpen(col, 1, Options{})
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 20, 40}, []uint8{red(out, 0, 0), red(out, 0, 1), red(out, 0, 2)})
}

func TestSharpenDoesNotMutateSourceAndKeepsAlpha(t *testing.T) {
	src := genRaster(32, 24, true)
	before := images.Checksum(src)

	out, err := Sharpen(src, 0.8, Options{})
	require.NoError(t, err)
	assert.Equal(t, before, images.Checksum(src))
	assertAlphaPreserved(t, src, out)
}

func TestSharpenParallelMatchesSequential(t *testing.T) {
	src := genRaster(300, 211, false)
	seq, err := Sharpen(src, 0.65, Options{})
	require.NoError(t, err)
	par, err := Sharpen(src, 0.65, Options{Parallel: true})
	require.NoError(t, err)
	assert.Equal(t, images.Checksum(seq), images.Checksum(par))
}

func TestSharpenRejectsBadInput(t *testing.T) {
	src := genRaster(4, 4, false)

	for _, f := range []float64{-0.01, 1.01, math.NaN()} {
		_, err := Sharpen(src, f, Options{})
		assert.ErrorIs(t, err, ErrParameterOutOfRange, "factor %v", f)
	}

	err := SharpenInto(src, src, 0.5, Options{})
	assert.ErrorIs(t, err, ErrAliasedBuffers)

	small := genRaster(3, 4, false)
	err = SharpenInto(small, src, 0.5, Options{})
	assert.ErrorIs(t, err, images.ErrInvalidDimensions)

	bad := &images.Raster{Width: 2, Height: 2, Pix: make([]uint8, 15)}
	_, err = Sharpen(bad, 0.5, Options{})
	assert.ErrorIs(t, err, images.ErrInvalidDimensions)
}

func TestSharpenWithPool(t *testing.T) {
	pool := &Pool{}
	src := genRaster(40, 30, false)
	plain, err := Sharpen(src, 0.5, Options{})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		pooled, err := Sharpen(src, 0.5, Options{Pool: pool})
		require.NoError(t, err)
		assert.Equal(t, plain.Pix, pooled.Pix)
		pool.Put(pooled)
	}
}
