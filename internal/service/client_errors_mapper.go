// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-six-notes/internal/adapter"
	"github.com/MKhiriev/go-six-notes/internal/app"
	"github.com/MKhiriev/go-six-notes/internal/store"
)

// mapAdapterError refines the adapter's transport error into a service
// business error when the response message identifies one. The adapter error
// stays in the chain so taxonomy checks keep working.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	var serverErr *adapter.ServerError
	if errors.As(err, &serverErr) {
		switch serverErr.Message {
		case app.MsgInvalidDataProvided:
			return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		case app.MsgLoginAlreadyExists:
			return fmt.Errorf("%w: %w", store.ErrLoginAlreadyExists, err)
		case app.MsgInvalidRecordName:
			return fmt.Errorf("%w: %w", ErrInvalidRecordName, err)
		}
		return err
	}

	if errors.Is(err, adapter.ErrNotAuthenticated) {
		msg := extractBody(err)
		switch msg {
		case app.MsgTokenIsExpired:
			return fmt.Errorf("%w: %w", ErrTokenIsExpired, err)
		case app.MsgTokenIsExpiredOrInvalid:
			return fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
		case app.MsgAccountRestricted:
			return fmt.Errorf("%w: %w", ErrAccountRestricted, err)
		}
	}

	return err
}

// extractBody extracts the body from a message of the form "not authenticated: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
