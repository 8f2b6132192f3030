package stencil

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownPreset is returned by LookupPreset for names not in Presets.
var ErrUnknownPreset = errors.New("unknown preset")

// DefaultPreset is the preset used when none is named.
const DefaultPreset = "custom"

// Preset is a named, fixed parameter bundle. Presets do not carry a style.
type Preset struct {
	Name          string  `json:"name" yaml:"name"`
	Contrast      float64 `json:"contrast" yaml:"contrast"`
	Threshold     float64 `json:"threshold" yaml:"threshold"`
	LineThickness float64 `json:"line_thickness" yaml:"line_thickness"`
	Sharpness     float64 `json:"sharpness" yaml:"sharpness"`
}

// Presets are the built-in bundles, keyed by name.
var Presets = map[string]Preset{
	"custom":      {Name: "custom", Contrast: 50, Threshold: 128, LineThickness: 50, Sharpness: 0.5},
	"tattoo":      {Name: "tattoo", Contrast: 70, Threshold: 200, LineThickness: 30, Sharpness: 0.7},
	"woodworking": {Name: "woodworking", Contrast: 60, Threshold: 150, LineThickness: 70, Sharpness: 0.6},
	"glasswork":   {Name: "glasswork", Contrast: 80, Threshold: 180, LineThickness: 40, Sharpness: 0.8},
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for n := range Presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LookupPreset finds a preset by case-insensitive name. An empty name selects DefaultPreset.
func LookupPreset(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultPreset
	}
	p, ok := Presets[key]
	if !ok {
		return Preset{}, errors.Wrapf(ErrUnknownPreset, "%q (known: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}

// Params returns the preset's parameters combined with style.
func (p Preset) Params(style Style) Params {
	return Params{
		Sharpness:     p.Sharpness,
		Contrast:      p.Contrast,
		Threshold:     p.Threshold,
		LineThickness: p.LineThickness,
		Style:         style,
	}
}

// DefaultParams returns the DefaultPreset parameters with the stencil style.
func DefaultParams() Params {
	return Presets[DefaultPreset].Params(StyleStencil)
}
