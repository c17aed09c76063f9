package handler

import (
	"net/http"
	"time"

	"github.com/mmeshcher/linkedin-collector/internal/config"
	"github.com/mmeshcher/linkedin-collector/internal/models"
)

func (h *Handler) HealthHandler(rw http.ResponseWriter, r *http.Request) {
	h.writeJSON(rw, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Message:   "应用运行正常",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// DebugHandler reports which settings are present without revealing them.
func (h *Handler) DebugHandler(rw http.ResponseWriter, r *http.Request) {
	h.writeJSON(rw, http.StatusOK, models.DebugResponse{
		Status:               "debug",
		EnvironmentVariables: config.EnvStatus(),
		Timestamp:            time.Now().Format(time.RFC3339),
	})
}
