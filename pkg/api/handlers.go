package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/adfharrison1/go-cms/pkg/domain"
)

// Handler provides HTTP handlers for the content API
type Handler struct {
	store domain.ContentStore
}

// NewHandler creates a new API handler with dependency injection
func NewHandler(store domain.ContentStore) *Handler {
	return &Handler{
		store: store,
	}
}

// contentType resolves the {type} route variable, writing a 404 when the
// name is not a registered content type.
func (h *Handler) contentType(w http.ResponseWriter, r *http.Request) (domain.ContentType, bool) {
	name := mux.Vars(r)["type"]
	ct, err := h.store.ContentType(name)
	if err != nil {
		log.Printf("WARN: Unknown content type '%s'", name)
		WriteJSONError(w, http.StatusNotFound, "Unknown content type '"+name+"'")
		return domain.ContentType{}, false
	}
	return ct, true
}
