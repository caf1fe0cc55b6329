package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/adfharrison1/employees-api/pkg/domain"
)

// Handler provides HTTP handlers for the employees API
type Handler struct {
	store    domain.EmployeeStore
	logger   *zap.Logger
	validate *validator.Validate
}

// NewHandler creates a new API handler with dependency injection
func NewHandler(store domain.EmployeeStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:    store,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// log returns the handler logger annotated with the request id, if any
func (h *Handler) log(r *http.Request) *zap.Logger {
	if id := RequestIDFrom(r.Context()); id != "" {
		return h.logger.With(zap.String("request_id", id))
	}
	return h.logger
}
