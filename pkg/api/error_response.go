package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/adfharrison1/go-cms/pkg/domain"
)

// Client-facing messages shared by several handlers
const (
	invalidBodyMessage = "Invalid or empty JSON body"
	readFailedMessage  = "Failed to read database"
)

// ErrorResponse represents a standard JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// WriteJSONError writes a JSON error response with the given status code and message
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	json.NewEncoder(w).Encode(response)
}

// WriteJSON writes v as a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: Encoding response failed: %v", err)
	}
}

// writeStoreError maps a store error to its status code and message.
// failMessage is used for storage failures.
func writeStoreError(w http.ResponseWriter, ct domain.ContentType, err error, failMessage string) {
	switch {
	case errors.Is(err, domain.ErrMalformedRequest):
		WriteJSONError(w, http.StatusBadRequest, invalidBodyMessage)
	case errors.Is(err, domain.ErrValidation):
		WriteJSONError(w, http.StatusBadRequest, ct.RequiredMessage())
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ct.Label+" not found")
	case errors.Is(err, domain.ErrUnknownContentType):
		WriteJSONError(w, http.StatusNotFound, "Unknown content type '"+ct.Name+"'")
	default:
		WriteJSONError(w, http.StatusInternalServerError, failMessage)
	}
}

// lowerLabel is the label as used mid-sentence ("blog post").
func lowerLabel(ct domain.ContentType) string {
	return strings.ToLower(ct.Label)
}
