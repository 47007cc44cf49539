// Package sizing converts client size specifications into a canonical pixel
// target and computes aspect-preserving containment fits. It is pure
// computation with no I/O and no dependency on the engine or image codecs.
package sizing

import (
	"math"

	"github.com/menta2k/image-upscaler/pkg/types"
)

// Pixel target bounds, applied uniformly to the API and CLI surfaces.
const (
	MinPixels = 1
	MaxPixels = 10000
)

// Physical size bounds.
const (
	MinCm  = 0.1
	MaxCm  = 400.0
	MinDPI = 10
	MaxDPI = 1200
)

const cmPerInch = 2.54

// Resolve converts a size specification into a pixel target. Exactly one of
// the two modes must be populated; mixing or omitting both is rejected.
// Resolution is deterministic: the same spec always yields the same result.
func Resolve(spec types.SizeSpec) (types.PixelDimensions, error) {
	switch {
	case spec.Pixels != nil && spec.Physical != nil:
		return types.PixelDimensions{}, &types.ValidationError{Kind: types.ConflictingModes}
	case spec.Pixels != nil:
		return resolvePixels(*spec.Pixels)
	case spec.Physical != nil:
		return resolvePhysical(*spec.Physical)
	default:
		return types.PixelDimensions{}, &types.ValidationError{Kind: types.MissingParameters}
	}
}

func resolvePixels(t types.PixelTarget) (types.PixelDimensions, error) {
	if t.Width < MinPixels || t.Width > MaxPixels {
		return types.PixelDimensions{}, types.NewOutOfRange("width", MinPixels, MaxPixels)
	}
	if t.Height < MinPixels || t.Height > MaxPixels {
		return types.PixelDimensions{}, types.NewOutOfRange("height", MinPixels, MaxPixels)
	}
	return types.PixelDimensions{Width: t.Width, Height: t.Height}, nil
}

func resolvePhysical(t types.PhysicalTarget) (types.PixelDimensions, error) {
	if t.WidthCm < MinCm || t.WidthCm > MaxCm {
		return types.PixelDimensions{}, types.NewOutOfRange("width_cm", MinCm, MaxCm)
	}
	if t.HeightCm < MinCm || t.HeightCm > MaxCm {
		return types.PixelDimensions{}, types.NewOutOfRange("height_cm", MinCm, MaxCm)
	}
	if t.DPI < MinDPI || t.DPI > MaxDPI {
		return types.PixelDimensions{}, types.NewOutOfRange("dpi", MinDPI, MaxDPI)
	}

	w, h := CmToPixels(t.WidthCm, t.HeightCm, t.DPI)
	dims := types.PixelDimensions{Width: w, Height: h}

	// 400cm at 1200dpi can exceed the pixel ceiling; the converted target
	// still has to pass the same range check as a direct pixel target.
	if dims.Width < MinPixels || dims.Width > MaxPixels {
		return types.PixelDimensions{}, types.NewOutOfRange("width", MinPixels, MaxPixels)
	}
	if dims.Height < MinPixels || dims.Height > MaxPixels {
		return types.PixelDimensions{}, types.NewOutOfRange("height", MinPixels, MaxPixels)
	}
	return dims, nil
}

// CmToPixels converts a physical size to pixels at the given density.
// Rounding is half away from zero: 10cm at 300dpi is 1181px.
func CmToPixels(widthCm, heightCm float64, dpi int) (int, int) {
	w := int(math.Round(widthCm / cmPerInch * float64(dpi)))
	h := int(math.Round(heightCm / cmPerInch * float64(dpi)))
	return w, h
}
