package stencil

import (
	"image"
	"log"
	"time"

	"github.com/nvr-ai/go-stencil/images"
	"github.com/nvr-ai/go-stencil/images/kernels"
	"github.com/pkg/errors"
)

// Options configures a Pipeline.
type Options struct {
	// Parallel splits every stage's rows across goroutines.
	Parallel bool `json:"parallel" yaml:"parallel"`
	// Pool, when set, supplies output buffers. Callers return them with Release.
	Pool *kernels.Pool `json:"-" yaml:"-"`
}

// Pipeline runs sharpen, contrast and binarize in that order.
//
// A Pipeline holds no per-run state and is safe for concurrent use.
type Pipeline struct {
	opts      Options
	debugMode bool
}

// NewPipeline creates a pipeline with the given options.
//
// Arguments:
// - opts: Parallelism and optional buffer pool.
//
// Returns:
// - A configured Pipeline.
//
// @example
//
//	p := stencil.NewPipeline(stencil.Options{Parallel: true, Pool: &kernels.Pool{}})
//	out, err := p.Run(src, stencil.DefaultParams())
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{opts: opts}
}

// SetDebugMode enables or disables per-stage debug logging.
//
// @example
// pipeline.SetDebugMode(true)
func (p *Pipeline) SetDebugMode(enabled bool) {
	p.debugMode = enabled
}

func (p *Pipeline) kernelOptions() kernels.Options {
	return kernels.Options{Edge: kernels.EdgeClamp, Pool: p.opts.Pool, Parallel: p.opts.Parallel}
}

// Run applies the effect to src and returns a new raster of the same size.
//
// src is only read. Identical src and params always produce byte-identical output.
// Validation happens before any buffer is produced, so an error never comes with a
// partial raster.
//
// Arguments:
// - src: The input raster.
// - params: The effect parameters.
//
// Returns:
// - The binary output raster.
// - ErrInvalidDimensions, ErrParameterOutOfRange, ErrArithmeticSingularity or
// ErrUnknownStyle.
func (p *Pipeline) Run(src *images.Raster, params Params) (*images.Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, errors.Wrap(err, "input validation failed")
	}
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(err, "parameter validation failed")
	}
	if _, err := kernels.ContrastFactor(params.Contrast); err != nil {
		return nil, errors.Wrap(err, "parameter validation failed")
	}

	if p.debugMode {
		log.Printf("[DEBUG] Starting stencil run: %dx%d, style=%s", src.Width, src.Height, params.Style)
		log.Printf("[DEBUG] Parameters: sharpness=%.2f contrast=%.1f threshold=%.1f line_thickness=%.1f",
			params.Sharpness, params.Contrast, params.Threshold, params.LineThickness)
	}

	opt := p.kernelOptions()
	// Sharpening reads src and writes work, so src is the unmodified snapshot every tap
	// needs. The remaining stages are per-pixel maps and run in place on work.
	work := opt.Pool.Get(src.Width, src.Height)

	start := time.Now()
	if err := kernels.SharpenInto(work, src, params.Sharpness, opt); err != nil {
		opt.Pool.Put(work)
		return nil, errors.Wrap(err, "sharpen")
	}
	p.debugStage("sharpen", start)

	start = time.Now()
	if err := kernels.ApplyContrastInto(work, work, params.Contrast, opt); err != nil {
		opt.Pool.Put(work)
		return nil, errors.Wrap(err, "contrast")
	}
	p.debugStage("contrast", start)

	start = time.Now()
	if err := kernels.BinarizeInto(work, work, params.rule(), opt); err != nil {
		opt.Pool.Put(work)
		return nil, errors.Wrap(err, "binarize")
	}
	p.debugStage("binarize", start)

	return work, nil
}

// RunImage converts img to a raster, runs the effect and returns the result as an image.
// Transparent areas keep their alpha; flatten them first with images.FromImage if needed.
func (p *Pipeline) RunImage(img image.Image, params Params) (*image.NRGBA, error) {
	src, err := images.FromImage(img, nil)
	if err != nil {
		return nil, errors.Wrap(err, "input validation failed")
	}
	out, err := p.Run(src, params)
	if err != nil {
		return nil, err
	}
	defer p.Release(out)
	return out.ToNRGBA(), nil
}

// Process decodes an encoded image, runs the effect and encodes the result.
//
// Arguments:
// - data: The encoded input image.
// - params: The effect parameters.
// - decode: Decode options (format, background, max dimension).
// - format: Output encoding.
//
// Returns:
// - The encoded output image.
// - error if decoding, the run or encoding fails.
func (p *Pipeline) Process(data []byte, params Params, decode images.DecodeOptions, format images.ImageFormat) ([]byte, error) {
	src, err := images.Decode(data, decode)
	if err != nil {
		return nil, errors.Wrap(err, "image decoding failed")
	}
	out, err := p.Run(src, params)
	if err != nil {
		return nil, err
	}
	defer p.Release(out)
	return images.EncodeBytes(out, format)
}

// Release returns a raster produced by Run to the pipeline's pool. It is a no-op when
// the pipeline has no pool. The raster must not be used afterwards.
func (p *Pipeline) Release(r *images.Raster) {
	p.opts.Pool.Put(r)
}

func (p *Pipeline) debugStage(name string, start time.Time) {
	if p.debugMode {
		log.Printf("[DEBUG] Stage %s took %s", name, time.Since(start))
	}
}
