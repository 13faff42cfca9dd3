// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the remote record service.
//
// The primary abstraction is [RecordStore], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRecordStore]) and a websocket [NotificationListener] for remote
// change signals.
//
// Transport failures and non-2xx responses are mapped by mapHTTPError to the
// sentinel values in errors.go so that callers can use [errors.Is] for
// transport-agnostic handling (e.g. [ErrNotAuthenticated] for 401/403,
// [ErrConflict] for 409).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-six-notes/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/record_store_mock.go -package=mock

// RecordStore defines transport-agnostic access to the user's private
// record database. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to the
// sentinel values defined in this package.
type RecordStore interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful Register or Login, or when a saved session is restored.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account and stores the returned bearer token.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates and stores the returned bearer token.
	Login(ctx context.Context, user models.User) (models.User, error)

	// AccountStatus reports whether the remote store can be used. Without a
	// token it answers [models.AccountStatusNoAccount] without a network call.
	AccountStatus(ctx context.Context) (models.AccountStatus, error)

	// FetchAll returns every Note record of the account, draining all pages.
	FetchAll(ctx context.Context) ([]models.NoteRecord, error)

	// FetchOne returns a single record. A missing record yields
	// [ErrRecordNotFound].
	FetchOne(ctx context.Context, recordName string) (models.NoteRecord, error)

	// Save writes record using record.ChangeTag as the base version; an empty
	// tag creates the record. A stale base yields a [*ConflictError] that
	// carries the server's current record.
	Save(ctx context.Context, record models.NoteRecord) (models.NoteRecord, error)

	// Subscribe registers interest in create, update and delete events on
	// Note records. Repeated calls with the same id are idempotent.
	Subscribe(ctx context.Context, subscriptionID string) error
}
