// Package backend constructs the upscaling engine selected by configuration.
package backend

import (
	"fmt"

	"github.com/menta2k/image-upscaler/internal/config"
	"github.com/menta2k/image-upscaler/pkg/engine"
	"github.com/menta2k/image-upscaler/pkg/engine/naive"
	"github.com/menta2k/image-upscaler/pkg/engine/onnx"
	"github.com/menta2k/image-upscaler/pkg/engine/remote"
)

// NewHandle returns a lazily-initialized engine handle for the configured
// backend. Construction errors surface on first use, not here.
func NewHandle(cfg config.EngineConfig) (*engine.Handle, error) {
	switch cfg.Backend {
	case config.BackendONNX:
		return engine.NewHandle(func() (engine.Upscaler, error) {
			if cfg.LibraryPath != "" {
				return onnx.NewWithLibrary(cfg.ModelPath, cfg.LibraryPath)
			}
			return onnx.New(cfg.ModelPath)
		}), nil
	case config.BackendRemote:
		return engine.NewHandle(func() (engine.Upscaler, error) {
			return remote.NewClient(cfg.URL)
		}), nil
	case config.BackendNaive:
		return engine.NewHandle(func() (engine.Upscaler, error) {
			return naive.New(), nil
		}), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}
