package api

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API routes with the given router
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")

	// Collection operations
	router.HandleFunc("/users", h.HandleListEmployees).Methods("GET")
	router.HandleFunc("/users", h.HandleCreateEmployee).Methods("POST")
	// Registered before /users/{id} so "export" is not taken as an id
	router.HandleFunc("/users/export", h.HandleExportEmployees).Methods("GET")

	// Employee operations (by ID)
	router.HandleFunc("/users/{id}", h.HandleGetEmployee).Methods("GET")
	router.HandleFunc("/users/{id}", h.HandleUpdateEmployee).Methods("PUT")
	router.HandleFunc("/users/{id}", h.HandleDeleteEmployee).Methods("DELETE")
}
