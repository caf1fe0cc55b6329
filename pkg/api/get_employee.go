package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/adfharrison1/employees-api/pkg/domain"
)

// HandleGetEmployee handles GET requests to retrieve a specific employee by ID
func (h *Handler) HandleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	logger := h.log(r).With(zap.String("id", id))
	logger.Info("handleGetEmployee called")

	record, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if domain.IsNotFound(err) {
			logger.Info("Employee not found")
			WriteText(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.writeFailure(w, r, err, msgGetFailed)
		return
	}

	logger.Info("Retrieved employee")
	if err := writeBody(w, r, http.StatusOK, record); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}
