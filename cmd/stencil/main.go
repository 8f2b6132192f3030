package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/nvr-ai/go-stencil/images"
	"github.com/nvr-ai/go-stencil/images/kernels"
	"github.com/nvr-ai/go-stencil/stencil"
	"github.com/nvr-ai/go-stencil/util"
)

const (
	// DefaultOutputPath is where the result is written when -out is not given.
	DefaultOutputPath = "stencil_pattern.png"
)

func main() {
	var (
		imagePath     string
		outputPath    string
		configPath    string
		presetName    string
		styleName     string
		outputFormat  string
		sharpness     float64
		contrast      float64
		threshold     float64
		lineThickness float64
		maxDimension  int
		parallel      bool
		keepAlpha     bool
		debug         bool
	)
	flag.StringVar(&imagePath, "image", "", "Path to the input image (.jpg, .jpeg, .png, .webp, .bmp, .tif)")
	flag.StringVar(&outputPath, "out", DefaultOutputPath, "Path of the output image")
	flag.StringVar(&configPath, "config", "", "Optional YAML config file")
	flag.StringVar(&presetName, "preset", stencil.DefaultPreset, "Preset: "+strings.Join(stencil.PresetNames(), ", "))
	flag.StringVar(&styleName, "style", "stencil", "Style: stencil, lineart, pattern")
	flag.StringVar(&outputFormat, "format", "", "Output format (png, webp, jpeg); defaults to the -out extension")
	flag.Float64Var(&sharpness, "sharpness", 0, "Sharpen blend weight in [0, 1] (overrides preset)")
	flag.Float64Var(&contrast, "contrast", 0, "Contrast in [0, 100] (overrides preset)")
	flag.Float64Var(&threshold, "threshold", 0, "Threshold in [0, 255] (overrides preset)")
	flag.Float64Var(&lineThickness, "line-thickness", 0, "Line-art band half-width in [0, 100] (overrides preset)")
	flag.IntVar(&maxDimension, "max-dim", 0, "Downscale input so neither side exceeds this (0 disables)")
	flag.BoolVar(&parallel, "parallel", true, "Process rows in parallel")
	flag.BoolVar(&keepAlpha, "keep-alpha", false, "Keep input transparency instead of flattening onto white")
	flag.BoolVar(&debug, "debug", false, "Log per-stage timings")
	flag.Parse()

	if imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := &stencil.Config{Preset: presetName, Style: styleName, Parallel: parallel}
	if configPath != "" {
		loaded, err := stencil.LoadConfig(configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "preset":
			cfg.Preset = presetName
		case "style":
			cfg.Style = styleName
		case "sharpness":
			cfg.Sharpness = &sharpness
		case "contrast":
			cfg.Contrast = &contrast
		case "threshold":
			cfg.Threshold = &threshold
		case "line-thickness":
			cfg.LineThickness = &lineThickness
		case "max-dim":
			cfg.MaxDimension = maxDimension
		case "parallel":
			cfg.Parallel = parallel
		case "format":
			cfg.OutputFormat = outputFormat
		}
	})
	if cfg.OutputFormat == "" {
		if f, ok := images.FormatFromPath(outputPath); ok {
			cfg.OutputFormat = string(f)
		}
	}

	params, err := cfg.Params()
	if err != nil {
		log.Fatalf("Invalid parameters: %v", err)
	}
	format, err := cfg.Format()
	if err != nil {
		log.Fatalf("Invalid output format: %v", err)
	}

	file, err := util.LoadImageFile(imagePath)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", imagePath, err)
	}

	decode := images.DefaultDecodeOptions()
	decode.Format = file.Format
	decode.MaxDimension = cfg.MaxDimension
	if keepAlpha {
		decode.Background = nil
	}

	opts := cfg.Options()
	opts.Pool = &kernels.Pool{}
	pipeline := stencil.NewPipeline(opts)
	pipeline.SetDebugMode(debug)

	start := time.Now()
	out, err := pipeline.Process(file.Data, params, decode, format)
	if err != nil {
		log.Fatalf("Failed to process %s: %v", imagePath, err)
	}
	if err := util.WriteImageFile(outputPath, out); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Wrote %s (%s, style=%s, preset=%s) in %s\n",
		outputPath, format, params.Style, cfg.Preset, time.Since(start).Round(time.Millisecond))
}
