package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DecodeOptions configures Decode.
type DecodeOptions struct {
	// Format of the data. FormatUnknown sniffs it from the magic bytes.
	Format ImageFormat `json:"format" yaml:"format"`
	// Background is composited under the image. A nil background keeps the source alpha.
	Background color.Color `json:"-" yaml:"-"`
	// MaxDimension downscales the decoded image so that neither side exceeds it (0 disables).
	MaxDimension int `json:"max_dimension" yaml:"max_dimension"`
}

// DefaultDecodeOptions flattens transparent input onto white, so strokes are drawn on
// paper-colored background rather than black.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{Background: color.White}
}

// Decode decodes image bytes into a Raster.
//
// Arguments:
// - data: The encoded image.
// - opts: Decode options.
//
// Returns:
// - The decoded raster.
// - error if the data is empty, the format is unsupported or decoding fails.
//
// Example:
//
//	r, err := images.Decode(data, images.DefaultDecodeOptions())
func Decode(data []byte, opts DecodeOptions) (*Raster, error) {
	if len(data) == 0 {
		return nil, errors.New("image data is empty")
	}

	format := opts.Format
	if format == FormatUnknown {
		format = SniffFormat(data)
	}

	img, err := decodeImage(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", format)
	}

	if opts.MaxDimension > 0 {
		img = Fit(img, opts.MaxDimension)
	}
	return FromImage(img, opts.Background)
}

func decodeImage(r io.Reader, format ImageFormat) (image.Image, error) {
	switch format {
	case FormatJPEG:
		return jpeg.Decode(r)
	case FormatPNG:
		return png.Decode(r)
	case FormatWebP:
		return webp.Decode(r)
	case FormatBMP:
		return bmp.Decode(r)
	case FormatTIFF:
		return tiff.Decode(r)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
}

// Encode writes the raster to w in the given format.
//
// PNG and lossless WebP keep the two-tone output exact; JPEG is accepted for previews.
func Encode(w io.Writer, r *Raster, format ImageFormat) error {
	if err := r.Validate(); err != nil {
		return err
	}
	img := r.ToNRGBA()

	var err error
	switch format {
	case FormatPNG, FormatUnknown:
		err = png.Encode(w, img)
	case FormatWebP:
		err = webp.Encode(w, img, &webp.Options{Lossless: true})
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "cannot encode %q", format)
	}
	return errors.Wrapf(err, "encode %s", format)
}

// EncodeBytes is Encode into a new byte slice.
func EncodeBytes(r *Raster, format ImageFormat) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
