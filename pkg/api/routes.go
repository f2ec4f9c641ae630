package api

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API routes with the given router
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")

	// Read-outs across content types, registered before /api/{type}
	router.HandleFunc("/api/feed", h.HandleFeed).Methods("GET")
	router.HandleFunc("/api/stats", h.HandleStats).Methods("GET")

	// Content type operations, id in the request body for PUT and DELETE
	router.HandleFunc("/api/{type}", h.HandleList).Methods("GET")
	router.HandleFunc("/api/{type}", h.HandleCreate).Methods("POST")
	router.HandleFunc("/api/{type}", h.HandleUpdate).Methods("PUT")
	router.HandleFunc("/api/{type}", h.HandleDelete).Methods("DELETE")

	// Record operations (by ID)
	router.HandleFunc("/api/{type}/{id}", h.HandleGetById).Methods("GET")
	router.HandleFunc("/api/{type}/{id}", h.HandleUpdateById).Methods("PATCH", "PUT")
	router.HandleFunc("/api/{type}/{id}", h.HandleDeleteById).Methods("DELETE")

	// Backups
	router.HandleFunc("/admin/snapshots", h.HandleListSnapshots).Methods("GET")
	router.HandleFunc("/admin/snapshots", h.HandleCreateSnapshot).Methods("POST")
}
