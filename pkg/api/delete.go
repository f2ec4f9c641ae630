package api

import (
	"log"
	"net/http"

	"github.com/adfharrison1/go-cms/pkg/domain"
)

// MessageResponse is the body of a successful delete
type MessageResponse struct {
	Message string `json:"message"`
}

// HandleDelete handles DELETE requests carrying the record id in the body
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ct, ok := h.contentType(w, r)
	if !ok {
		return
	}

	payload, err := decodeRecord(w, r)
	if err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		writeStoreError(w, ct, err, "")
		return
	}

	id, ok := bodyID(w, ct, payload)
	if !ok {
		return
	}

	h.delete(w, ct, id)
}

// HandleDeleteById handles DELETE requests to remove a specific record by ID
func (h *Handler) HandleDeleteById(w http.ResponseWriter, r *http.Request) {
	ct, ok := h.contentType(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid "+lowerLabel(ct)+" ID")
		return
	}

	h.delete(w, ct, id)
}

func (h *Handler) delete(w http.ResponseWriter, ct domain.ContentType, id int64) {
	log.Printf("INFO: handleDelete called for '%s', record %d", ct.Name, id)

	if err := h.store.Delete(ct.Name, id); err != nil {
		log.Printf("ERROR: Delete failed for %s %d: %v", lowerLabel(ct), id, err)
		writeStoreError(w, ct, err, "Failed to delete "+lowerLabel(ct))
		return
	}

	log.Printf("INFO: Deleted %s %d", lowerLabel(ct), id)
	WriteJSON(w, http.StatusOK, MessageResponse{Message: ct.Label + " deleted successfully"})
}
