// Package imageupscaler provides AI-powered 4x image upscaling with
// aspect-preserving dimension targeting.
//
// The heavy lifting is delegated to a Real-ESRGAN super-resolution engine
// (local ONNX Runtime, a remote serving endpoint, or a test stand-in); this
// package resolves the requested target size, runs the engine, and fits the
// result inside the target box.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"log"
//
//		upscaler "github.com/menta2k/image-upscaler"
//		"github.com/menta2k/image-upscaler/pkg/engine"
//		"github.com/menta2k/image-upscaler/pkg/engine/onnx"
//		"github.com/menta2k/image-upscaler/pkg/types"
//	)
//
//	func main() {
//		handle := engine.NewHandle(func() (engine.Upscaler, error) {
//			return onnx.New("realesrgan-x4.onnx")
//		})
//		up := upscaler.New(handle)
//
//		spec := types.SizeSpec{Pixels: &types.PixelTarget{Width: 1920, Height: 1080}}
//		out, err := up.UpscaleFile(context.Background(), "photo.jpg", spec)
//		if err != nil {
//			log.Fatal(err)
//		}
//		log.Printf("wrote %s", out)
//	}
//
// Target sizes are given either directly in pixels (1-10000 per axis) or as
// a physical print size in centimeters plus DPI; both modes resolve to the
// same canonical pixel target before processing. The upscaled image always
// fits within the target box with its aspect ratio preserved.
package imageupscaler

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/menta2k/image-upscaler/internal/utils"
	"github.com/menta2k/image-upscaler/pkg/engine"
	"github.com/menta2k/image-upscaler/pkg/imgio"
	"github.com/menta2k/image-upscaler/pkg/pipeline"
	"github.com/menta2k/image-upscaler/pkg/sizing"
	"github.com/menta2k/image-upscaler/pkg/types"
)

// Version of the image upscaler library
const Version = "1.0.0"

// ImageUpscaler is the high-level interface shared by the API and CLI
// front-ends.
type ImageUpscaler struct {
	pipeline *pipeline.Pipeline
	log      *slog.Logger
}

// New creates an ImageUpscaler over an engine handle.
func New(handle *engine.Handle) *ImageUpscaler {
	return &ImageUpscaler{
		pipeline: pipeline.New(handle),
		log:      slog.Default(),
	}
}

// UpscaleImage resolves spec and runs the full pipeline on img.
func (u *ImageUpscaler) UpscaleImage(ctx context.Context, img image.Image, spec types.SizeSpec) (image.Image, error) {
	target, err := sizing.Resolve(spec)
	if err != nil {
		return nil, err
	}
	return u.pipeline.Process(ctx, img, target)
}

// UpscaleTo runs the pipeline against an already-resolved pixel target.
func (u *ImageUpscaler) UpscaleTo(ctx context.Context, img image.Image, target types.PixelDimensions) (image.Image, error) {
	return u.pipeline.Process(ctx, img, target)
}

// UpscaleFile loads a file, upscales it per spec, and writes the result
// beside the input with the batch naming convention. Returns the output path.
func (u *ImageUpscaler) UpscaleFile(ctx context.Context, path string, spec types.SizeSpec) (string, error) {
	target, err := sizing.Resolve(spec)
	if err != nil {
		return "", err
	}
	return u.upscaleFileTo(ctx, path, target)
}

func (u *ImageUpscaler) upscaleFileTo(ctx context.Context, path string, target types.PixelDimensions) (string, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return "", &types.ProcessingError{Stage: "decode", Err: err}
	}

	out, err := u.pipeline.Process(ctx, img, target)
	if err != nil {
		return "", err
	}

	outputPath := utils.OutputPath(path)
	if err := imgio.Save(out, outputPath, 95, false); err != nil {
		return "", &types.ProcessingError{Stage: "save", Err: err}
	}
	return outputPath, nil
}

// FileError records one failed file in a batch.
type FileError struct {
	Path string
	Err  error
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	Matched   int
	Succeeded int
	Failures  []FileError
}

// ProcessBatch upscales every file matched by pattern, sequentially, with
// per-file failure isolation: one file's error is recorded and the batch
// continues. The size spec is validated once, before any file is touched.
// An empty match set or an invalid spec is an error; individual file
// failures are not.
func (u *ImageUpscaler) ProcessBatch(ctx context.Context, pattern string, spec types.SizeSpec) (BatchResult, error) {
	target, err := sizing.Resolve(spec)
	if err != nil {
		return BatchResult{}, err
	}
	if spec.Physical != nil {
		u.log.Info("converted physical size to pixels",
			"width_cm", spec.Physical.WidthCm, "height_cm", spec.Physical.HeightCm,
			"dpi", spec.Physical.DPI, "width", target.Width, "height", target.Height)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return BatchResult{}, fmt.Errorf("invalid glob pattern: %w", err)
	}

	var files []string
	for _, m := range matches {
		if utils.IsUpscaledOutput(m) {
			u.log.Debug("skipping previous output", "file", m)
			continue
		}
		files = append(files, m)
	}
	if len(files) == 0 {
		return BatchResult{}, fmt.Errorf("no files found matching pattern: %s", pattern)
	}

	result := BatchResult{Matched: len(files)}
	u.log.Info("starting batch", "files", len(files))

	for _, path := range files {
		u.log.Info("processing", "file", path)

		outputPath, err := u.upscaleFileTo(ctx, path, target)
		if err != nil {
			u.log.Error("failed to process file", "file", path, "error", err)
			result.Failures = append(result.Failures, FileError{Path: path, Err: err})
			continue
		}

		u.log.Info("saved", "file", outputPath)
		result.Succeeded++
	}

	u.log.Info("batch finished", "succeeded", result.Succeeded, "total", result.Matched)
	return result, nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
