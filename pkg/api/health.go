package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HandleHealth handles GET requests to the health check endpoint
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:  "healthy",
		Message: "employees-api is running",
	}
	status := http.StatusOK

	if err := h.store.Ping(r.Context()); err != nil {
		h.log(r).Warn("health check failed", zap.Error(err))
		response = HealthResponse{
			Status:  "unhealthy",
			Message: "database unreachable",
		}
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
