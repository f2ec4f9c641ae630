package api

import (
	"log"
	"net/http"

	"github.com/adfharrison1/go-cms/pkg/domain"
)

// HandleUpdate handles PUT requests carrying the record id in the body
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	h.update(w, ct, id, payload)
}

// HandleUpdateById handles PATCH and PUT requests for a record by ID.
// Both perform a shallow merge.
func (h *Handler) HandleUpdateById(w http.ResponseWriter, r *http.Request) {
	ct, ok := h.contentType(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid "+lowerLabel(ct)+" ID")
		return
	}

	payload, err := decodeRecord(w, r)
	if err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		writeStoreError(w, ct, err, "")
		return
	}

	h.update(w, ct, id, payload)
}

func (h *Handler) update(w http.ResponseWriter, ct domain.ContentType, id int64, payload domain.Record) {
	log.Printf("INFO: handleUpdate called for '%s', record %d", ct.Name, id)

	updated, err := h.store.Update(ct.Name, id, payload)
	if err != nil {
		log.Printf("ERROR: Update failed for %s %d: %v", lowerLabel(ct), id, err)
		writeStoreError(w, ct, err, "Failed to update "+lowerLabel(ct))
		return
	}

	log.Printf("INFO: Updated %s %d", lowerLabel(ct), id)
	WriteJSON(w, http.StatusOK, updated)
}

// bodyID extracts the id of a body-addressed request. A missing or zero id
// is a 400; an id that cannot match any record (a string, a fraction) is a 404.
func bodyID(w http.ResponseWriter, ct domain.ContentType, payload domain.Record) (int64, bool) {
	raw := payload[domain.FieldID]
	if !domain.IsPresent(raw) {
		log.Printf("WARN: Request for '%s' has no id", ct.Name)
		WriteJSONError(w, http.StatusBadRequest, "Missing "+lowerLabel(ct)+" ID")
		return 0, false
	}

	id, ok := domain.IDFromValue(raw)
	if !ok {
		log.Printf("WARN: Request for '%s' has non-integer id %v", ct.Name, raw)
		WriteJSONError(w, http.StatusNotFound, ct.Label+" not found")
		return 0, false
	}
	return id, true
}
