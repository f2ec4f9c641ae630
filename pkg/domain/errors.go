package domain

import "errors"

var (
	// ErrValidation marks a payload that is missing a required field.
	ErrValidation = errors.New("validation failure")

	// ErrNotFound marks an update or delete aimed at an id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorage marks a backing file that could not be read, parsed or written.
	ErrStorage = errors.New("storage failure")

	// ErrMalformedRequest marks a request body that is not a JSON object.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrUnknownContentType marks a content type name missing from the registry.
	ErrUnknownContentType = errors.New("unknown content type")

	// ErrSnapshotsDisabled marks a snapshot operation on a store without a
	// snapshot directory.
	ErrSnapshotsDisabled = errors.New("snapshots are disabled")
)
