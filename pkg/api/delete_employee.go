package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// HandleDeleteEmployee handles DELETE requests to remove an employee by ID
func (h *Handler) HandleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	logger := h.log(r).With(zap.String("id", id))
	logger.Info("handleDeleteEmployee called")

	if err := h.store.DeleteByID(r.Context(), id); err != nil {
		h.writeFailure(w, r, err, msgDeleteFailed)
		return
	}

	logger.Info("Deleted employee")
	WriteText(w, http.StatusOK, msgDeleted)
}
