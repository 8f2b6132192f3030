package kernels

import (
	"sync"

	"github.com/nvr-ai/go-stencil/images"
	"github.com/pkg/errors"
)

var (
	// ErrParameterOutOfRange is returned when a stage parameter lies outside its domain.
	// Parameters are never silently clamped.
	ErrParameterOutOfRange = errors.New("parameter out of range")
	// ErrArithmeticSingularity is returned when the contrast factor denominator vanishes.
	ErrArithmeticSingularity = errors.New("arithmetic singularity")
	// ErrUnknownStyle is returned for a Style outside the defined set.
	ErrUnknownStyle = errors.New("unknown binarization style")
	// ErrAliasedBuffers is returned when a stage that reads neighbors is asked to write
	// into its own source.
	ErrAliasedBuffers = errors.New("destination aliases source")
)

// Options configures a stage call. The zero value clamps edges, runs sequentially and
// allocates fresh buffers.
type Options struct {
	Edge     EdgeMode // Edge sampling mode for neighborhood reads.
	Pool     *Pool    // Optional buffer pool for dst reuse.
	Parallel bool     // Enable row parallelism (good for 1080p+).
}

// Pool lets callers reuse raster buffers across repeated runs, e.g. while a slider is
// being dragged and the same image is re-filtered many times per second.
type Pool struct {
	rasters sync.Pool // *images.Raster
}

// Get returns a raster of the requested size. Contents are unspecified; every stage
// fully overwrites its destination.
func (p *Pool) Get(width, height int) *images.Raster {
	if p != nil {
		if v := p.rasters.Get(); v != nil {
			r := v.(*images.Raster)
			if r.Width == width && r.Height == height && len(r.Pix) == width*height*4 {
				return r
			}
		}
	}
	return &images.Raster{Width: width, Height: height, Pix: make([]uint8, width*height*4)}
}

// Put hands a raster back to the pool. The caller must not use it afterwards.
func (p *Pool) Put(r *images.Raster) {
	if p == nil || r == nil {
		return
	}
	p.rasters.Put(r)
}

// checkPair validates src and dst and requires them to share dimensions.
func checkPair(dst, src *images.Raster) error {
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dst.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if !dst.SameSize(src) {
		return errors.Wrapf(images.ErrInvalidDimensions, "destination %dx%d does not match source %dx%d",
			dst.Width, dst.Height, src.Width, src.Height)
	}
	return nil
}

// inRange reports whether v lies in [lo, hi]. NaN is never in range.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

func outOfRange(name string, v, lo, hi float64) error {
	return errors.Wrapf(ErrParameterOutOfRange, "%s=%v not in [%v, %v]", name, v, lo, hi)
}
