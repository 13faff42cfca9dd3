package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrAccountRestricted = errors.New("account is restricted")
	ErrInvalidRecordName = errors.New("invalid record name")
	ErrContentTooLarge   = errors.New("record content exceeds quota")
)

// Client-side sync errors.
var (
	// ErrNotAuthenticated is returned by every sync operation while the account
	// is not available.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidNoteSet is returned when a sync pass is given anything other
	// than the six notes ordered by slot.
	ErrInvalidNoteSet = errors.New("note set must hold exactly six slots ordered by id")

	// ErrConflictRetryExhausted is returned when the single retry after a
	// change tag conflict conflicts again.
	ErrConflictRetryExhausted = errors.New("conflict retry exhausted")

	// ErrSyncDisabled is returned by SyncNow while sync is switched off.
	ErrSyncDisabled = errors.New("sync is disabled")

	// ErrInvalidSlot is returned for slot indexes outside 0..5.
	ErrInvalidSlot = errors.New("invalid note slot")

	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")
)
