// Package pipeline orchestrates a single upscale: color normalization,
// engine inference at the fixed 4x factor, then containment resize to the
// resolved pixel target.
package pipeline

import (
	"context"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/menta2k/image-upscaler/pkg/engine"
	"github.com/menta2k/image-upscaler/pkg/sizing"
	"github.com/menta2k/image-upscaler/pkg/types"
)

// Pipeline runs bitmaps through the shared engine handle. Safe for
// concurrent use; per-call state stays on the stack.
type Pipeline struct {
	handle *engine.Handle
}

// New creates a pipeline over an engine handle.
func New(handle *engine.Handle) *Pipeline {
	return &Pipeline{handle: handle}
}

// Process upscales img and fits it within target. Engine initialization and
// inference failures surface as ProcessingError with no partial output.
func (p *Pipeline) Process(ctx context.Context, img image.Image, target types.PixelDimensions) (image.Image, error) {
	up, err := p.handle.Upscaler()
	if err != nil {
		return nil, &types.ProcessingError{Stage: "engine initialization", Err: err}
	}

	normalized := normalizeColor(img)

	upscaled, err := up.Upscale4x(ctx, normalized)
	if err != nil {
		return nil, &types.ProcessingError{Stage: "inference", Err: err}
	}

	return sizing.ResizeToFit(upscaled, target.Width, target.Height), nil
}

// normalizeColor flattens any color model to opaque three-channel pixels:
// alpha is composited over white, grayscale and paletted images expand to
// full color. Never fails for a decodable image.
func normalizeColor(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Opaque() {
		return nrgba
	}

	b := img.Bounds()
	background := imaging.New(b.Dx(), b.Dy(), color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return imaging.Overlay(background, img, image.Pt(0, 0), 1.0)
}
