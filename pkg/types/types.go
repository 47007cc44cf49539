package types

// PixelDimensions is a resolved pixel target. Both values are strictly
// positive once produced by sizing.Resolve.
type PixelDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PixelTarget specifies a target size directly in pixels.
type PixelTarget struct {
	Width  int
	Height int
}

// PhysicalTarget specifies a target size as a physical print size plus
// pixel density.
type PhysicalTarget struct {
	WidthCm  float64
	HeightCm float64
	DPI      int
}

// SizeSpec carries the client's size specification. Exactly one of the two
// fields must be set; supplying both or neither is a validation error
// reported by sizing.Resolve.
type SizeSpec struct {
	Pixels   *PixelTarget
	Physical *PhysicalTarget
}
