package onnx

import (
	"image"
	"image/color"
)

// imageToTensor converts a bitmap into a flat float32 NCHW tensor
// (batch=1, RGB planes) with pixels normalized to [0, 1], the input layout
// the Real-ESRGAN x4 ONNX export expects.
func imageToTensor(img image.Image) ([]float32, int, int) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	planeSize := width * height
	tensor := make([]float32, 3*planeSize)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			// RGBA() returns [0, 65535]
			idx := y*width + x
			tensor[0*planeSize+idx] = float32(r) / 65535.0
			tensor[1*planeSize+idx] = float32(g) / 65535.0
			tensor[2*planeSize+idx] = float32(b) / 65535.0
		}
	}

	return tensor, width, height
}

// tensorToImage converts a float32 NCHW tensor back into an opaque RGBA
// bitmap, denormalizing and clamping each channel.
func tensorToImage(tensor []float32, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	planeSize := width * height

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			r := clamp01(tensor[0*planeSize+idx])
			g := clamp01(tensor[1*planeSize+idx])
			b := clamp01(tensor[2*planeSize+idx])

			img.SetRGBA(x, y, color.RGBA{
				R: uint8(r * 255.0),
				G: uint8(g * 255.0),
				B: uint8(b * 255.0),
				A: 255,
			})
		}
	}

	return img
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
