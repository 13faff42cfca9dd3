// Package app holds the plain-text bodies of HTTP error responses. The
// client matches some of them (see adapter) to tell apart errors that share
// a status code, so the wording is part of the wire contract.
package app

// authentication
const (
	MsgInvalidDataProvided     = "invalid data provided"
	MsgInvalidLoginPassword    = "invalid login/password"
	MsgLoginAlreadyExists      = "login already exists"
	MsgRegistrationFailed      = "registration failed"
	MsgLoginFailed             = "login failed"
	MsgTokenIsExpired          = "token is expired"
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"
	MsgNoUserIDProvided        = "no user ID provided"
	MsgAccountRestricted       = "account is restricted"
)

// records
const (
	MsgRecordNotFound    = "record not found"
	MsgInvalidRecordName = "invalid record name"
	MsgContentTooLarge   = "record content exceeds quota" // 507
	MsgHashMismatch      = "request hash mismatch"
)

// server side
const (
	MsgInternalServerError = "internal server error"
	MsgStorageUnavailable  = "storage temporarily unavailable"
)
