package util

import (
	"os"

	"github.com/nvr-ai/go-stencil/images"
	"github.com/pkg/errors"
)

// ErrNotAnImage is returned for files that are neither named nor shaped like a supported image.
var ErrNotAnImage = errors.New("not a supported image file")

// ImageFile represents an image file.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Data is the raw bytes of the image file.
	Data []byte
	// Format is the image format, from the extension or, failing that, the content.
	Format images.ImageFormat
}

// LoadImageFile reads a single image file.
//
// Arguments:
// - path: Path to the image file.
//
// Returns:
// - ImageFile: The file's bytes and detected format.
// - error: Error if reading fails or the file is not a supported image.
func LoadImageFile(path string) (ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImageFile{}, err
	}

	format, ok := images.FormatFromPath(path)
	if sniffed := images.SniffFormat(data); sniffed != images.FormatUnknown {
		// Content wins over a misleading extension.
		format, ok = sniffed, true
	}
	if !ok {
		return ImageFile{}, errors.Wrap(ErrNotAnImage, path)
	}

	return ImageFile{
		Path:   path,
		Data:   data,
		Format: format,
	}, nil
}

// WriteImageFile writes data to path, creating or truncating it.
func WriteImageFile(path string, data []byte) error {
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write %s", path)
}
