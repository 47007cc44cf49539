package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/menta2k/image-upscaler/pkg/imgio"
	"github.com/menta2k/image-upscaler/pkg/sizing"
	"github.com/menta2k/image-upscaler/pkg/types"
)

// errorResponse is the JSON body of every non-2xx answer.
type errorResponse struct {
	Detail string `json:"detail"`
}

// Upscale handles POST /upscale. Validation runs strictly before any
// decoding or inference: file presence, content type, size-spec mode, range
// checks, and only then the pipeline.
func (s *Server) Upscale(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse multipart form: %v", err))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		writeError(w, http.StatusBadRequest, (&types.ValidationError{Kind: types.NotAnImage}).Error())
		return
	}

	spec, err := parseSizeSpec(r.FormValue)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	target, err := sizing.Resolve(spec)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	img, err := imgio.Decode(file)
	if err != nil {
		s.writeFailure(w, &types.ProcessingError{Stage: "decode", Err: err})
		return
	}

	out, err := s.upscaler.UpscaleTo(r.Context(), img, target)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	var buf bytes.Buffer
	if err := imgio.EncodePNG(&buf, out); err != nil {
		s.writeFailure(w, &types.ProcessingError{Stage: "encode", Err: err})
		return
	}

	filename := filepath.Base(header.Filename)
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=upscaled_%s", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseSizeSpec interprets the form fields of the two sizing modes. A mode
// counts as attempted when any of its fields is present; attempting both is
// a conflict, attempting one incompletely is a missing-parameters error.
func parseSizeSpec(formValue func(string) string) (types.SizeSpec, error) {
	widthStr := formValue("target_width")
	heightStr := formValue("target_height")
	widthCmStr := formValue("width_cm")
	heightCmStr := formValue("height_cm")
	dpiStr := formValue("dpi")

	usingPixels := widthStr != "" || heightStr != ""
	usingPhysical := widthCmStr != "" || heightCmStr != "" || dpiStr != ""

	switch {
	case usingPixels && usingPhysical:
		return types.SizeSpec{}, &types.ValidationError{Kind: types.ConflictingModes}
	case usingPhysical:
		if widthCmStr == "" || heightCmStr == "" || dpiStr == "" {
			return types.SizeSpec{}, &types.ValidationError{Kind: types.MissingParameters}
		}
		widthCm, err := strconv.ParseFloat(widthCmStr, 64)
		if err != nil {
			return types.SizeSpec{}, types.NewOutOfRange("width_cm", sizing.MinCm, sizing.MaxCm)
		}
		heightCm, err := strconv.ParseFloat(heightCmStr, 64)
		if err != nil {
			return types.SizeSpec{}, types.NewOutOfRange("height_cm", sizing.MinCm, sizing.MaxCm)
		}
		dpi, err := strconv.Atoi(dpiStr)
		if err != nil {
			return types.SizeSpec{}, types.NewOutOfRange("dpi", sizing.MinDPI, sizing.MaxDPI)
		}
		return types.SizeSpec{Physical: &types.PhysicalTarget{WidthCm: widthCm, HeightCm: heightCm, DPI: dpi}}, nil
	case usingPixels:
		if widthStr == "" || heightStr == "" {
			return types.SizeSpec{}, &types.ValidationError{Kind: types.MissingParameters}
		}
		width, err := strconv.Atoi(widthStr)
		if err != nil {
			return types.SizeSpec{}, types.NewOutOfRange("width", sizing.MinPixels, sizing.MaxPixels)
		}
		height, err := strconv.Atoi(heightStr)
		if err != nil {
			return types.SizeSpec{}, types.NewOutOfRange("height", sizing.MinPixels, sizing.MaxPixels)
		}
		return types.SizeSpec{Pixels: &types.PixelTarget{Width: width, Height: height}}, nil
	default:
		return types.SizeSpec{}, &types.ValidationError{Kind: types.MissingParameters}
	}
}

// writeFailure maps the error taxonomy to HTTP: client validation errors are
// 400, everything from decode onward is 500.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Error())
		return
	}

	s.log.Error("error processing image", "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
