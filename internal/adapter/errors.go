package adapter

import (
	"errors"

	"github.com/MKhiriev/go-six-notes/models"
)

var (
	// ErrNotAuthenticated means the session is missing, expired or rejected.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNetworkUnavailable means the service could not be reached or reported
	// a transient outage.
	ErrNetworkUnavailable = errors.New("network unavailable")
	// ErrQuotaExceeded means the account ran out of storage.
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrRecordNotFound means the requested record does not exist.
	ErrRecordNotFound = errors.New("record not found")
	// ErrConflict matches every [*ConflictError].
	ErrConflict = errors.New("change tag conflict")
	// ErrServer matches every [*ServerError].
	ErrServer = errors.New("server error")
)

// ConflictError is returned by Save when the base change tag is stale.
// Server holds the record as currently stored remotely.
type ConflictError struct {
	Server models.NoteRecord
}

func (e *ConflictError) Error() string {
	return "change tag conflict on " + e.Server.RecordName
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ServerError is any other non-2xx response.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return "server error: " + e.Message
}

func (e *ServerError) Is(target error) bool {
	return target == ErrServer
}
