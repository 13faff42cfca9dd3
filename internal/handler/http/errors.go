// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Errors of the Authorization header parsing in the auth middleware.
var (
	ErrEmptyAuthorizationHeader   = errors.New("empty `Authorization` header")
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
	ErrUnsupportedAuthScheme      = errors.New("`Authorization` scheme is not Bearer")
	ErrEmptyToken                 = errors.New("empty token in `Authorization` header")

	// errHijackNotSupported is returned when the wrapped writer cannot be
	// hijacked, which breaks websocket upgrades.
	errHijackNotSupported = errors.New("response writer does not support hijacking")
)
