package images

import (
	"crypto/md5"
	"fmt"
)

// Checksum generates a deterministic checksum of a raster's dimensions and samples,
// used to verify that repeated runs produce identical output.
//
// Arguments:
// - r: The raster to compute the checksum for.
//
// Returns:
// - A hex-encoded MD5 checksum string, or "empty" for a nil or sample-less raster.
//
// Example:
//
// ```go
//
//	checksum := Checksum(out)
//	fmt.Printf("Output checksum: %s\n", checksum)
//
// ```
func Checksum(r *Raster) string {
	if r == nil || len(r.Pix) == 0 {
		return "empty"
	}

	hash := md5.New()
	fmt.Fprintf(hash, "%dx%d:", r.Width, r.Height)
	hash.Write(r.Pix)
	return fmt.Sprintf("%x", hash.Sum(nil))
}
