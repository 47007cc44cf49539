package server

import "net/http"

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health reports liveness. The engine is lazily constructed, so readiness of
// the model is intentionally not part of this check.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Message: "Image upscaler API is running",
	})
}
