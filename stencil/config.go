package stencil

import (
	"bytes"
	"io"
	"os"

	"github.com/nvr-ai/go-stencil/images"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the file form of a run configuration.
//
// Example:
//
//	preset: tattoo
//	style: lineart
//	threshold: 190
//	parallel: true
//	max_dimension: 2048
//	output_format: png
type Config struct {
	// Preset names the starting bundle; empty selects DefaultPreset.
	Preset string `json:"preset" yaml:"preset"`
	// Style is the binarization rule name; empty selects stencil.
	Style string `json:"style" yaml:"style"`

	// Optional overrides applied on top of the preset.
	Sharpness     *float64 `json:"sharpness,omitempty" yaml:"sharpness,omitempty"`
	Contrast      *float64 `json:"contrast,omitempty" yaml:"contrast,omitempty"`
	Threshold     *float64 `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	LineThickness *float64 `json:"line_thickness,omitempty" yaml:"line_thickness,omitempty"`

	// Parallel enables row parallelism inside each stage.
	Parallel bool `json:"parallel" yaml:"parallel"`
	// MaxDimension downscales input larger than this before filtering (0 disables).
	MaxDimension int `json:"max_dimension" yaml:"max_dimension"`
	// OutputFormat is the encoding of the result (png, webp or jpeg); empty selects png.
	OutputFormat string `json:"output_format" yaml:"output_format"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// ParseConfig parses YAML config data. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if len(data) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "parse config")
	}
	return cfg, nil
}

// Params resolves the preset, style and overrides into a validated Params.
func (c *Config) Params() (Params, error) {
	preset, err := LookupPreset(c.Preset)
	if err != nil {
		return Params{}, err
	}
	style, err := ParseStyle(c.Style)
	if err != nil {
		return Params{}, err
	}

	p := preset.Params(style)
	if c.Sharpness != nil {
		p.Sharpness = *c.Sharpness
	}
	if c.Contrast != nil {
		p.Contrast = *c.Contrast
	}
	if c.Threshold != nil {
		p.Threshold = *c.Threshold
	}
	if c.LineThickness != nil {
		p.LineThickness = *c.LineThickness
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Format resolves OutputFormat.
func (c *Config) Format() (images.ImageFormat, error) {
	if c.OutputFormat == "" {
		return images.FormatPNG, nil
	}
	return images.ParseFormat(c.OutputFormat)
}

// Options returns the pipeline options described by the config.
func (c *Config) Options() Options {
	return Options{Parallel: c.Parallel}
}
