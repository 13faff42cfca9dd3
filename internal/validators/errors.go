package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID     = errors.New("invalid user ID")
	ErrInvalidRecordName = errors.New("invalid record name")
	ErrInvalidRecordType = errors.New("invalid record type")
	ErrContentTooLarge   = errors.New("content exceeds quota")
	ErrNegativeCursor    = errors.New("cursor position must not be negative")
	ErrMissingModified   = errors.New("last modified time is required")
	ErrEmptyLogin        = errors.New("login is required")
	ErrEmptyPassword     = errors.New("password is required")
	ErrInvalidSubID      = errors.New("invalid subscription id")
)
