package store

import (
	"errors"

	"github.com/MKhiriev/go-six-notes/models"
)

// Domain errors. Match with errors.Is; the SQL layer wraps them together
// with the driver error.
var (
	ErrLoginAlreadyExists = errors.New("login already exists")
	ErrNoUserWasFound     = errors.New("no user was found")
	ErrRecordNotFound     = errors.New("record was not found")

	// ErrVersionConflict is matched by every [*VersionConflictError]: the
	// client's change tag is not the stored one.
	ErrVersionConflict = errors.New("record change tag conflict occurred")

	// ErrStoreUnavailable marks failures the classifier deems transient.
	ErrStoreUnavailable = errors.New("storage temporarily unavailable")

	// ErrLocalKeyNotFound is returned by [LocalStorage.Get] for absent keys.
	ErrLocalKeyNotFound = errors.New("local key not found")
)

// SQL step that failed.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
)

// VersionConflictError is returned by SaveRecord on a change tag mismatch.
type VersionConflictError struct {
	Current models.NoteRecord
}

func (e *VersionConflictError) Error() string {
	return ErrVersionConflict.Error() + ": " + e.Current.RecordName
}

func (e *VersionConflictError) Is(target error) bool {
	return target == ErrVersionConflict
}
