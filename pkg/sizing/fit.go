package sizing

import (
	"image"

	"github.com/disintegration/imaging"
)

// FitWithin computes the largest size that fits inside the target box while
// preserving the source aspect ratio. The result never exceeds the target on
// either axis and touches it on at least one. Inputs must be positive.
func FitWithin(srcWidth, srcHeight, targetWidth, targetHeight int) (int, int) {
	srcRatio := float64(srcWidth) / float64(srcHeight)
	targetRatio := float64(targetWidth) / float64(targetHeight)

	var w, h int
	if srcRatio > targetRatio {
		// Width is the limiting factor.
		w = targetWidth
		h = int(float64(targetWidth) / srcRatio)
	} else {
		// Height is the limiting factor. Equal ratios land here and fit exactly.
		h = targetHeight
		w = int(float64(targetHeight) * srcRatio)
	}

	// Extreme ratios can floor an axis to zero; a resample needs at least 1px.
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// ResizeToFit resamples img to FitWithin(img, target) using Lanczos.
func ResizeToFit(img image.Image, targetWidth, targetHeight int) image.Image {
	b := img.Bounds()
	w, h := FitWithin(b.Dx(), b.Dy(), targetWidth, targetHeight)
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
