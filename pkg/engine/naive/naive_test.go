package naive

import (
	"context"
	"image"
	"image/color"
	"testing"
)

func TestUpscale4xDimensions(t *testing.T) {
	up := New()
	img := image.NewRGBA(image.Rect(0, 0, 25, 40))

	out, err := up.Upscale4x(context.Background(), img)
	if err != nil {
		t.Fatalf("Upscale4x failed: %v", err)
	}
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 160 {
		t.Errorf("expected 100x160, got %dx%d", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestUpscale4xPreservesPixels(t *testing.T) {
	up := New()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 1, color.RGBA{0, 0, 255, 255})

	out, err := up.Upscale4x(context.Background(), img)
	if err != nil {
		t.Fatalf("Upscale4x failed: %v", err)
	}

	// Nearest-neighbor repetition keeps blocks of the source color.
	r, _, _, _ := out.At(1, 1).RGBA()
	if r>>8 != 255 {
		t.Errorf("expected red block at origin, got %v", out.At(1, 1))
	}
}

func TestUpscale4xCancelled(t *testing.T) {
	up := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := up.Upscale4x(ctx, image.NewRGBA(image.Rect(0, 0, 4, 4))); err == nil {
		t.Error("expected error for cancelled context")
	}
}
