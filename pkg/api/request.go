package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/adfharrison1/go-cms/pkg/domain"
)

// maxBodySize caps request bodies at 1 MiB.
const maxBodySize = 1 << 20

// decodeRecord reads the request body as a JSON object. Empty bodies,
// invalid JSON, null and non-object values are rejected with
// domain.ErrMalformedRequest.
func decodeRecord(w http.ResponseWriter, r *http.Request) (domain.Record, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRequest, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty body", domain.ErrMalformedRequest)
	}

	var rec domain.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRequest, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: body is null", domain.ErrMalformedRequest)
	}
	return rec, nil
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id '%s'", raw)
	}
	return id, nil
}
