package api

import (
	"log"
	"net/http"
)

// StatsResponse holds record counts for the admin dashboard
type StatsResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// HandleStats handles GET requests for per content type record counts
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.Counts()
	if err != nil {
		log.Printf("ERROR: Counting records failed: %v", err)
		WriteJSONError(w, http.StatusInternalServerError, readFailedMessage)
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	WriteJSON(w, http.StatusOK, StatsResponse{Counts: counts, Total: total})
}
