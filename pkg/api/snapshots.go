package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/adfharrison1/go-cms/pkg/domain"
)

// SnapshotListResponse lists the stored snapshots, newest first
type SnapshotListResponse struct {
	Snapshots []domain.SnapshotInfo `json:"snapshots"`
	Count     int                   `json:"count"`
}

// HandleListSnapshots handles GET requests listing snapshots
func (h *Handler) HandleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.store.ListSnapshots()
	if err != nil {
		log.Printf("ERROR: Listing snapshots failed: %v", err)
		writeSnapshotError(w, err, "Failed to list snapshots")
		return
	}

	WriteJSON(w, http.StatusOK, SnapshotListResponse{Snapshots: snapshots, Count: len(snapshots)})
}

// HandleCreateSnapshot handles POST requests taking a snapshot now
func (h *Handler) HandleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	log.Printf("INFO: handleCreateSnapshot called")

	info, err := h.store.WriteSnapshot()
	if err != nil {
		log.Printf("ERROR: Snapshot failed: %v", err)
		writeSnapshotError(w, err, "Failed to write snapshot")
		return
	}

	WriteJSON(w, http.StatusCreated, info)
}

func writeSnapshotError(w http.ResponseWriter, err error, failMessage string) {
	if errors.Is(err, domain.ErrSnapshotsDisabled) {
		WriteJSONError(w, http.StatusServiceUnavailable, "Snapshots are disabled")
		return
	}
	WriteJSONError(w, http.StatusInternalServerError, failMessage)
}
