package api

import (
	"net/http"

	"go.uber.org/zap"
)

// CreatedResponse echoes the request's name unsplit alongside the new id
type CreatedResponse struct {
	ID    int64  `json:"id" msgpack:"id"`
	Name  string `json:"name" msgpack:"name"`
	Email string `json:"email" msgpack:"email"`
}

// HandleCreateEmployee handles POST requests to insert a new employee
func (h *Handler) HandleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	logger := h.log(r)
	logger.Info("handleCreateEmployee called")

	in, err := h.decodeEmployeeInput(r)
	if err != nil {
		h.writeFailure(w, r, err, msgCreateFailed)
		return
	}

	id, err := h.store.Create(r.Context(), in)
	if err != nil {
		h.writeFailure(w, r, err, msgCreateFailed)
		return
	}

	logger.Info("Created employee", zap.Int64("id", id))
	resp := CreatedResponse{ID: id, Name: in.Name, Email: in.Email}
	if err := writeBody(w, r, http.StatusCreated, resp); err != nil {
		logger.Error("failed to write response", zap.Error(err))
	}
}
