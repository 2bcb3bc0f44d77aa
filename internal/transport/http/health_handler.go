package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/Vikash02022000/FinSight/pkg/contracts"
)

// HealthHandler answers liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates a health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HealthCheck handles GET /api/health.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":    "healthy",
		"build":     contracts.GetVersionInfo(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
