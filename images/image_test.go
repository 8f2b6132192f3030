package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRasterAndValidate(t *testing.T) {
	r, err := NewRaster(3, 2)
	require.NoError(t, err)
	assert.Len(t, r.Pix, 24)
	assert.NoError(t, r.Validate())
	assert.Equal(t, 20, r.Offset(2, 1))

	_, err = NewRaster(0, 5)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	cases := []*Raster{
		nil,
		{Width: 0, Height: 1, Pix: nil},
		{Width: 2, Height: 2, Pix: make([]uint8, 15)},
		{Width: 2, Height: 2, Pix: make([]uint8, 17)},
	}
	for _, c := range cases {
		assert.ErrorIs(t, c.Validate(), ErrInvalidDimensions)
	}
}

func TestCloneIsDeep(t *testing.T) {
	r, err := NewRaster(2, 1)
	require.NoError(t, err)
	c := r.Clone()
	c.Pix[0] = 9
	assert.Equal(t, uint8(0), r.Pix[0])
}

func TestFromImageFlattensOntoBackground(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6)) // non-zero Min
	src.SetNRGBA(5, 5, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetNRGBA(6, 5, color.NRGBA{}) // fully transparent

	kept, err := FromImage(src, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, kept.Width)
	assert.Equal(t, 1, kept.Height)
	assert.Equal(t, []uint8{10, 20, 30, 255, 0, 0, 0, 0}, kept.Pix)

	flat, err := FromImage(src, color.White)
	require.NoError(t, err)
	assert.Equal(t, []uint8{10, 20, 30, 255, 255, 255, 255, 255}, flat.Pix)
}

func TestFromImageRejectsEmpty(t *testing.T) {
	_, err := FromImage(image.NewNRGBA(image.Rect(0, 0, 0, 3)), nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	_, err = FromImage(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestToNRGBARoundTrip(t *testing.T) {
	r := &Raster{Width: 2, Height: 1, Pix: []uint8{1, 2, 3, 4, 5, 6, 7, 8}}
	img := r.ToNRGBA()
	assert.Equal(t, color.NRGBA{R: 5, G: 6, B: 7, A: 8}, img.NRGBAAt(1, 0))

	back, err := FromImage(img, nil)
	require.NoError(t, err)
	assert.Equal(t, r.Pix, back.Pix)
}

func TestChecksum(t *testing.T) {
	a := &Raster{Width: 2, Height: 1, Pix: []uint8{1, 2, 3, 4, 5, 6, 7, 8}}
	b := &Raster{Width: 1, Height: 2, Pix: a.Pix}
	assert.Equal(t, Checksum(a), Checksum(a.Clone()))
	assert.NotEqual(t, Checksum(a), Checksum(b), "dimensions are part of the checksum")
	assert.Equal(t, "empty", Checksum(nil))
}

func TestFit(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 400, 200))
	assert.Same(t, img, Fit(img, 0).(*image.NRGBA))
	assert.Same(t, img, Fit(img, 400).(*image.NRGBA))

	small := Fit(img, 100)
	assert.Equal(t, 100, small.Bounds().Dx())
	assert.Equal(t, 50, small.Bounds().Dy())

	r, err := FromImage(img, nil)
	require.NoError(t, err)
	fitted, err := FitRaster(r, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, fitted.Width)
	assert.Equal(t, 20, fitted.Height)
	assert.NoError(t, fitted.Validate())
}
