package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	upscaler "github.com/menta2k/image-upscaler"
	"github.com/menta2k/image-upscaler/internal/backend"
	"github.com/menta2k/image-upscaler/internal/config"
	"github.com/menta2k/image-upscaler/pkg/types"
)

func main() {
	var width, height int
	var widthCm, heightCm float64
	var dpi int
	var backendName, modelPath, url, libraryPath string
	var verbose bool
	var showVersion bool

	flag.IntVar(&width, "width", 0, "target width in pixels")
	flag.IntVar(&height, "height", 0, "target height in pixels")
	flag.Float64Var(&widthCm, "width-cm", 0, "target width in centimeters (requires -height-cm and -dpi)")
	flag.Float64Var(&heightCm, "height-cm", 0, "target height in centimeters (requires -width-cm and -dpi)")
	flag.IntVar(&dpi, "dpi", 0, "print resolution for cm-based sizing")

	flag.StringVar(&backendName, "backend", config.BackendONNX, "upscaling backend: onnx, remote, or naive")
	flag.StringVar(&modelPath, "model", "", "path to ONNX model file (onnx backend)")
	flag.StringVar(&url, "url", "", "upscaling server URL (remote backend)")
	flag.StringVar(&libraryPath, "lib", "", "path to onnxruntime shared library (onnx backend)")

	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(upscaler.GetVersion())
		return
	}

	if flag.NArg() != 1 {
		log.Fatalf("usage: %s [flags] <glob-pattern>\nexample: %s -width 3840 -height 2160 'photos/*.jpg'",
			filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
	}
	pattern := flag.Arg(0)

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	spec, err := buildSizeSpec(width, height, widthCm, heightCm, dpi)
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.Default().Engine
	cfg.Backend = backendName
	if modelPath != "" {
		cfg.ModelPath = modelPath
	}
	if url != "" {
		cfg.URL = url
	}
	if libraryPath != "" {
		cfg.LibraryPath = libraryPath
	}

	handle, err := backend.NewHandle(cfg)
	if err != nil {
		log.Fatal(err)
	}

	result, err := upscaler.New(handle).ProcessBatch(context.Background(), pattern, spec)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range result.Failures {
		fmt.Fprintf(os.Stderr, "failed: %s: %v\n", f.Path, f.Err)
	}
	fmt.Printf("upscaled %d of %d file(s)\n", result.Succeeded, result.Matched)

	if result.Succeeded == 0 {
		os.Exit(1)
	}
}

// buildSizeSpec maps flags onto the two sizing modes. A mode counts as
// attempted when any of its flags is set.
func buildSizeSpec(width, height int, widthCm, heightCm float64, dpi int) (types.SizeSpec, error) {
	usingPixels := width != 0 || height != 0
	usingPhysical := widthCm != 0 || heightCm != 0 || dpi != 0

	switch {
	case usingPixels && usingPhysical:
		return types.SizeSpec{}, errors.New("cannot mix -width/-height with -width-cm/-height-cm/-dpi, choose one mode")
	case usingPhysical:
		return types.SizeSpec{Physical: &types.PhysicalTarget{WidthCm: widthCm, HeightCm: heightCm, DPI: dpi}}, nil
	case usingPixels:
		return types.SizeSpec{Pixels: &types.PixelTarget{Width: width, Height: height}}, nil
	default:
		return types.SizeSpec{}, errors.New("specify a target size: -width and -height, or -width-cm, -height-cm, and -dpi")
	}
}
