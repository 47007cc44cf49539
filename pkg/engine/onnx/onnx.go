// Package onnx runs the Real-ESRGAN x4 model locally through ONNX Runtime.
package onnx

import (
	"context"
	"fmt"
	"image"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/menta2k/image-upscaler/pkg/engine"
)

// The x4 export uses dynamic spatial dimensions with fixed tensor names.
var (
	inputNames  = []string{"input"}
	outputNames = []string{"output"}
)

// ONNX Runtime environment is process-global and initialized at most once.
var (
	initOnce sync.Once
	initErr  error
)

func initRuntime(libraryPath string) error {
	initOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		initErr = ort.InitializeEnvironment()
	})
	return initErr
}

// Engine runs Real-ESRGAN inference through an ONNX Runtime session.
// A session supports concurrent Run calls, so one Engine serves all
// in-flight requests.
type Engine struct {
	session *ort.DynamicAdvancedSession
}

// New creates an engine from a Real-ESRGAN x4 ONNX model file using the
// default onnxruntime shared library location.
func New(modelPath string) (*Engine, error) {
	return NewWithLibrary(modelPath, "")
}

// NewWithLibrary creates an engine with an explicit onnxruntime shared
// library path.
func NewWithLibrary(modelPath, libraryPath string) (*Engine, error) {
	if err := initRuntime(libraryPath); err != nil {
		return nil, fmt.Errorf("failed to initialize onnxruntime: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, outputNames, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Real-ESRGAN session: %w", err)
	}

	return &Engine{session: session}, nil
}

// Upscale4x runs the model on img and returns a bitmap 4x larger on each
// axis. The call blocks for the full inference.
func (e *Engine) Upscale4x(ctx context.Context, img image.Image) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, width, height := imageToTensor(img)

	input, err := ort.NewTensor(ort.NewShape(1, 3, int64(height), int64(width)), data)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer input.Destroy()

	outWidth := width * engine.Scale
	outHeight := height * engine.Scale

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 3, int64(outHeight), int64(outWidth)))
	if err != nil {
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer output.Destroy()

	if err := e.session.Run([]ort.Value{input}, []ort.Value{output}); err != nil {
		return nil, fmt.Errorf("Real-ESRGAN inference failed: %w", err)
	}

	return tensorToImage(output.GetData(), outWidth, outHeight), nil
}

// Close releases the session.
func (e *Engine) Close() error {
	return e.session.Destroy()
}
