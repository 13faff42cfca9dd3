package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-six-notes/internal/app"
	"github.com/MKhiriev/go-six-notes/internal/service"
	"github.com/MKhiriev/go-six-notes/internal/store"
)

// errorStatus binds a sentinel to its status code and the plain-text body the
// client recognises.
type errorStatus struct {
	target  error
	status  int
	message string
}

// errorStatusTable is matched in order: the first hit wins, so transient
// storage failures are listed before the low-level SQL errors they wrap.
var errorStatusTable = []errorStatus{
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrInvalidRecordName, http.StatusBadRequest, app.MsgInvalidRecordName},
	{service.ErrContentTooLarge, http.StatusInsufficientStorage, app.MsgContentTooLarge},
	{service.ErrWrongPassword, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	{service.ErrTokenIsExpired, http.StatusUnauthorized, app.MsgTokenIsExpired},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{service.ErrAccountRestricted, http.StatusForbidden, app.MsgAccountRestricted},

	{store.ErrStoreUnavailable, http.StatusServiceUnavailable, app.MsgStorageUnavailable},
	{store.ErrLoginAlreadyExists, http.StatusConflict, app.MsgLoginAlreadyExists},
	{store.ErrNoUserWasFound, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	{store.ErrRecordNotFound, http.StatusNotFound, app.MsgRecordNotFound},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError, app.MsgInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError, app.MsgInternalServerError},
	{store.ErrBeginningTransaction, http.StatusInternalServerError, app.MsgInternalServerError},
	{store.ErrCommitingTransaction, http.StatusInternalServerError, app.MsgInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError, app.MsgInternalServerError},
	{store.ErrScanningRow, http.StatusInternalServerError, app.MsgInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError, app.MsgInternalServerError},
}

func statusFromError(err error) (int, string) {
	for _, e := range errorStatusTable {
		if errors.Is(err, e.target) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError writes the mapped status with a plain-text body.
func writeError(w http.ResponseWriter, err error) int {
	status, message := statusFromError(err)
	http.Error(w, message, status)
	return status
}
