package api

import (
	"net/http"

	"go.uber.org/zap"
)

// HandleListEmployees handles GET requests returning every employee row
func (h *Handler) HandleListEmployees(w http.ResponseWriter, r *http.Request) {
	logger := h.log(r)
	logger.Info("handleListEmployees called")

	records, err := h.store.List(r.Context())
	if err != nil {
		h.writeFailure(w, r, err, msgListFailed)
		return
	}

	logger.Info("Found employees", zap.Int("count", len(records)))
	if err := writeBody(w, r, http.StatusOK, records); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}
