// Package naive provides a model-free Upscaler that scales by pixel
// repetition. It exists so the pipeline can be exercised deterministically
// without a model runtime, and doubles as a fallback backend.
package naive

import (
	"context"
	"image"

	"github.com/disintegration/imaging"

	"github.com/menta2k/image-upscaler/pkg/engine"
)

// Upscaler performs nearest-neighbor 4x upscaling.
type Upscaler struct{}

// New creates a naive upscaler.
func New() *Upscaler {
	return &Upscaler{}
}

// Upscale4x scales img by the fixed engine factor using nearest-neighbor
// resampling. It is deterministic and never fails for a non-empty image.
func (u *Upscaler) Upscale4x(ctx context.Context, img image.Image) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*engine.Scale, b.Dy()*engine.Scale, imaging.NearestNeighbor), nil
}
