package api

import (
	"log"
	"net/http"
)

// HandleList handles GET requests listing every record of a content type
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ct, ok := h.contentType(w, r)
	if !ok {
		return
	}

	log.Printf("INFO: handleList called for '%s'", ct.Name)

	records, err := h.store.List(ct.Name)
	if err != nil {
		log.Printf("ERROR: Listing '%s' failed: %v", ct.Name, err)
		writeStoreError(w, ct, err, readFailedMessage)
		return
	}

	log.Printf("INFO: Found %d records in '%s'", len(records), ct.Name)
	WriteJSON(w, http.StatusOK, records)
}
