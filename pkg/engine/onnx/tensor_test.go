package onnx

import (
	"image"
	"image/color"
	"testing"
)

func TestImageToTensorLayout(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 0, 255, 255})

	tensor, w, h := imageToTensor(img)
	if w != 2 || h != 1 {
		t.Fatalf("expected 2x1, got %dx%d", w, h)
	}
	if len(tensor) != 6 {
		t.Fatalf("expected 6 values, got %d", len(tensor))
	}

	// Planar layout: R plane first, then G, then B.
	if tensor[0] < 0.99 || tensor[1] > 0.01 {
		t.Errorf("red plane wrong: %v", tensor[:2])
	}
	if tensor[4] > 0.01 || tensor[5] < 0.99 {
		t.Errorf("blue plane wrong: %v", tensor[4:])
	}
}

func TestImageToTensorIgnoresOrigin(t *testing.T) {
	// Bounds not anchored at (0,0) must still convert correctly.
	img := image.NewRGBA(image.Rect(10, 20, 14, 23))

	_, w, h := imageToTensor(img)
	if w != 4 || h != 3 {
		t.Errorf("expected 4x3, got %dx%d", w, h)
	}
}

func TestTensorToImageClamps(t *testing.T) {
	// Model output can overshoot [0,1].
	tensor := []float32{1.5, -0.2, 0.5}
	img := tensorToImage(tensor, 1, 1)

	c := img.RGBAAt(0, 0)
	if c.R != 255 {
		t.Errorf("expected clamped R=255, got %d", c.R)
	}
	if c.G != 0 {
		t.Errorf("expected clamped G=0, got %d", c.G)
	}
	if c.A != 255 {
		t.Errorf("expected opaque output, got A=%d", c.A)
	}
}
