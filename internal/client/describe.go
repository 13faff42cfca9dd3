package client

import (
	"errors"

	"github.com/MKhiriev/go-six-notes/internal/adapter"
	"github.com/MKhiriev/go-six-notes/internal/service"
	"github.com/MKhiriev/go-six-notes/internal/store"
)

var descriptions = []struct {
	target error
	text   string
}{
	{service.ErrWrongPassword, "wrong login or password"},
	{store.ErrLoginAlreadyExists, "this login is already taken"},
	{service.ErrInvalidDataProvided, "login and password must not be empty"},
	{service.ErrAccountRestricted, "the account is restricted, sync is not possible"},
	{service.ErrTokenIsExpired, "the session has expired, log in again"},
	{service.ErrTokenIsExpiredOrInvalid, "the session is not valid, log in again"},
	{service.ErrSyncDisabled, "sync is disabled, run enable-sync first"},
	{service.ErrNotAuthenticated, "not logged in or the account is unavailable"},
	{service.ErrInvalidSlot, "slot must be between 0 and 5"},
	{adapter.ErrQuotaExceeded, "the account ran out of storage"},
	{adapter.ErrNetworkUnavailable, "the record service is unreachable, changes stay local"},
	{adapter.ErrNotAuthenticated, "not logged in or the session was rejected"},
	{service.ErrConflictRetryExhausted, "the note kept changing remotely, it will be retried"},
}

// Describe returns the message shown to the user for err. Unknown errors
// are shown as is.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	for _, d := range descriptions {
		if errors.Is(err, d.target) {
			return d.text
		}
	}
	return err.Error()
}
