package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// HandleUpdateEmployee handles PUT requests overwriting an employee's name and
// email. An id that matches no row still reports success.
func (h *Handler) HandleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	logger := h.log(r).With(zap.String("id", id))
	logger.Info("handleUpdateEmployee called")

	in, err := h.decodeEmployeeInput(r)
	if err != nil {
		h.writeFailure(w, r, err, msgUpdateFailed)
		return
	}

	if err := h.store.UpdateByID(r.Context(), id, in); err != nil {
		h.writeFailure(w, r, err, msgUpdateFailed)
		return
	}

	logger.Info("Updated employee")
	WriteText(w, http.StatusOK, msgUpdated)
}
