package api

import (
	"log"
	"net/http"
)

// HandleGetById handles GET requests to retrieve a specific record by ID
func (h *Handler) HandleGetById(w http.ResponseWriter, r *http.Request) {
	ct, ok := h.contentType(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid "+lowerLabel(ct)+" ID")
		return
	}

	log.Printf("INFO: handleGetById called for '%s', record %d", ct.Name, id)

	record, err := h.store.Get(ct.Name, id)
	if err != nil {
		log.Printf("ERROR: Get failed for %s %d: %v", lowerLabel(ct), id, err)
		writeStoreError(w, ct, err, readFailedMessage)
		return
	}

	WriteJSON(w, http.StatusOK, record)
}
