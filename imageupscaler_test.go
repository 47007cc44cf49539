package imageupscaler

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/menta2k/image-upscaler/pkg/engine"
	"github.com/menta2k/image-upscaler/pkg/engine/naive"
	"github.com/menta2k/image-upscaler/pkg/imgio"
	"github.com/menta2k/image-upscaler/pkg/types"
)

func newTestUpscaler() *ImageUpscaler {
	return New(engine.NewHandle(func() (engine.Upscaler, error) {
		return naive.New(), nil
	}))
}

// createTestImage creates a simple test image
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 128, 255})
		}
	}
	return img
}

func TestNew(t *testing.T) {
	up := newTestUpscaler()
	if up == nil {
		t.Fatal("New() returned nil")
	}
	if up.pipeline == nil {
		t.Error("pipeline component is nil")
	}
}

func TestUpscaleImagePixelMode(t *testing.T) {
	up := newTestUpscaler()
	spec := types.SizeSpec{Pixels: &types.PixelTarget{Width: 400, Height: 400}}

	out, err := up.UpscaleImage(context.Background(), createTestImage(100, 100), spec)
	if err != nil {
		t.Fatalf("UpscaleImage failed: %v", err)
	}
	if out.Bounds().Dx() != 400 || out.Bounds().Dy() != 400 {
		t.Errorf("expected 400x400, got %dx%d", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestUpscaleImagePhysicalMode(t *testing.T) {
	up := newTestUpscaler()
	spec := types.SizeSpec{Physical: &types.PhysicalTarget{WidthCm: 10, HeightCm: 10, DPI: 300}}

	out, err := up.UpscaleImage(context.Background(), createTestImage(100, 100), spec)
	if err != nil {
		t.Fatalf("UpscaleImage failed: %v", err)
	}
	// 10cm at 300dpi resolves to 1181px.
	if out.Bounds().Dx() != 1181 || out.Bounds().Dy() != 1181 {
		t.Errorf("expected 1181x1181, got %dx%d", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestUpscaleImageInvalidSpec(t *testing.T) {
	up := newTestUpscaler()

	_, err := up.UpscaleImage(context.Background(), createTestImage(10, 10), types.SizeSpec{})
	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpscaleFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "photo.png")
	if err := imgio.Save(createTestImage(50, 25), input, 95, false); err != nil {
		t.Fatalf("write input: %v", err)
	}

	up := newTestUpscaler()
	spec := types.SizeSpec{Pixels: &types.PixelTarget{Width: 100, Height: 100}}

	outputPath, err := up.UpscaleFile(context.Background(), input, spec)
	if err != nil {
		t.Fatalf("UpscaleFile failed: %v", err)
	}
	if outputPath != filepath.Join(dir, "photo_upscaled.png") {
		t.Errorf("unexpected output path %s", outputPath)
	}

	out, err := imgio.Open(outputPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	// 50x25 upscaled 4x is 200x100; fit into 100x100 gives 100x50.
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 50 {
		t.Errorf("expected 100x50, got %dx%d", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestProcessBatch(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png"} {
		if err := imgio.Save(createTestImage(20, 20), filepath.Join(dir, name), 95, false); err != nil {
			t.Fatalf("write input: %v", err)
		}
	}
	// A corrupt file must not abort the batch.
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	up := newTestUpscaler()
	spec := types.SizeSpec{Pixels: &types.PixelTarget{Width: 80, Height: 80}}

	result, err := up.ProcessBatch(context.Background(), filepath.Join(dir, "*.png"), spec)
	if err != nil {
		t.Fatalf("ProcessBatch failed: %v", err)
	}
	if result.Matched != 3 {
		t.Errorf("expected 3 matched files, got %d", result.Matched)
	}
	if result.Succeeded != 2 {
		t.Errorf("expected 2 successes, got %d", result.Succeeded)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(result.Failures))
	}

	var perr *types.ProcessingError
	if !errors.As(result.Failures[0].Err, &perr) {
		t.Errorf("expected ProcessingError for corrupt file, got %v", result.Failures[0].Err)
	}

	for _, name := range []string{"a_upscaled.png", "b_upscaled.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected output %s: %v", name, err)
		}
	}
}

func TestProcessBatchSkipsPreviousOutputs(t *testing.T) {
	dir := t.TempDir()
	if err := imgio.Save(createTestImage(20, 20), filepath.Join(dir, "a.png"), 95, false); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if err := imgio.Save(createTestImage(20, 20), filepath.Join(dir, "a_upscaled.png"), 95, false); err != nil {
		t.Fatalf("write fake output: %v", err)
	}

	up := newTestUpscaler()
	spec := types.SizeSpec{Pixels: &types.PixelTarget{Width: 80, Height: 80}}

	result, err := up.ProcessBatch(context.Background(), filepath.Join(dir, "*.png"), spec)
	if err != nil {
		t.Fatalf("ProcessBatch failed: %v", err)
	}
	if result.Matched != 1 {
		t.Errorf("expected the previous output to be skipped, matched %d", result.Matched)
	}
}

func TestProcessBatchNoMatches(t *testing.T) {
	up := newTestUpscaler()
	spec := types.SizeSpec{Pixels: &types.PixelTarget{Width: 80, Height: 80}}

	_, err := up.ProcessBatch(context.Background(), filepath.Join(t.TempDir(), "*.png"), spec)
	if err == nil {
		t.Error("expected error for empty match set")
	}
}

func TestProcessBatchInvalidSpecFailsFast(t *testing.T) {
	dir := t.TempDir()
	if err := imgio.Save(createTestImage(20, 20), filepath.Join(dir, "a.png"), 95, false); err != nil {
		t.Fatalf("write input: %v", err)
	}

	up := newTestUpscaler()
	spec := types.SizeSpec{Pixels: &types.PixelTarget{Width: 0, Height: 80}}

	_, err := up.ProcessBatch(context.Background(), filepath.Join(dir, "*.png"), spec)
	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	// Nothing may be written when validation fails.
	if _, err := os.Stat(filepath.Join(dir, "a_upscaled.png")); !os.IsNotExist(err) {
		t.Error("validation failure must not produce output files")
	}
}
