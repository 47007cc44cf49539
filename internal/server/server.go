// Package server exposes the upscaler over HTTP: an upload UI, a health
// endpoint, and the multipart /upscale endpoint.
package server

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	upscaler "github.com/menta2k/image-upscaler"
)

//go:embed web
var webFS embed.FS

// Server holds the HTTP handlers and their shared dependencies.
type Server struct {
	upscaler       *upscaler.ImageUpscaler
	maxUploadBytes int64
	log            *slog.Logger
}

// New creates a server around an upscaler facade.
func New(up *upscaler.ImageUpscaler, maxUploadMB int64, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		upscaler:       up,
		maxUploadBytes: maxUploadMB << 20,
		log:            log,
	}
}

// Routes returns the chi router for all endpoints.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.Index)
	r.Get("/health", s.Health)
	r.Post("/upscale", s.Upscale)
	return r
}

// Index serves the HTML upload UI.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		http.Error(w, "UI not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}
