package api

import (
	"log"
	"net/http"
)

// HandleCreate handles POST requests adding a record to a content type
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ct, ok := h.contentType(w, r)
	if !ok {
		return
	}

	log.Printf("INFO: handleCreate called for '%s'", ct.Name)

	payload, err := decodeRecord(w, r)
	if err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		writeStoreError(w, ct, err, "")
		return
	}

	created, err := h.store.Create(ct.Name, payload)
	if err != nil {
		log.Printf("ERROR: Create failed for '%s': %v", ct.Name, err)
		writeStoreError(w, ct, err, "Failed to create "+lowerLabel(ct))
		return
	}

	log.Printf("INFO: Created %s %v", lowerLabel(ct), created["id"])
	WriteJSON(w, http.StatusCreated, created)
}
