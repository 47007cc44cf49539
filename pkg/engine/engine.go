// Package engine defines the super-resolution capability used by the
// pipeline. Concrete backends live in the subpackages onnx, remote and naive
// and are selected at startup, mirroring the backend switch in cmd.
package engine

import (
	"context"
	"image"
	"sync"
)

// Scale is the fixed linear upscale factor of the Real-ESRGAN x4 family.
const Scale = 4

// Upscaler turns a bitmap into one Scale times larger on each axis. The call
// may be slow and must run to completion or fail outright; implementations
// must be safe for concurrent use once constructed.
type Upscaler interface {
	Upscale4x(ctx context.Context, img image.Image) (image.Image, error)
}

// Handle is the process-wide lazily-initialized engine slot. Construction is
// deferred to first use so the server starts fast, and guarded so concurrent
// first requests build the engine exactly once. A Handle is never torn down
// or rebuilt; a failed build is sticky and reported to every caller.
type Handle struct {
	build func() (Upscaler, error)

	once     sync.Once
	upscaler Upscaler
	err      error
}

// NewHandle wraps a backend constructor in a one-shot lazy initializer.
func NewHandle(build func() (Upscaler, error)) *Handle {
	return &Handle{build: build}
}

// Upscaler returns the engine, constructing it on first call.
func (h *Handle) Upscaler() (Upscaler, error) {
	h.once.Do(func() {
		h.upscaler, h.err = h.build()
	})
	return h.upscaler, h.err
}
