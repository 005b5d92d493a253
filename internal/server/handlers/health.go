package handlers

import (
	"log/slog"
	"net/http"
)

// HealthHandler answers liveness probes. The client's network monitor
// polls this endpoint to decide online/offline.
type HealthHandler struct {
	logger  *slog.Logger
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		version: version,
	}
}

// HealthResponse is the health check body
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Health handles GET /healthz
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: h.version,
	}

	sendJSON(w, h.logger, resp, http.StatusOK)
}
