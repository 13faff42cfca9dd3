package service

import (
	"context"

	"github.com/MKhiriev/go-six-notes/models"
)

// SyncEngine reconciles the six local note slots with the remote record store.
//
// The engine owns the account availability state. Every sync operation fails
// fast with [ErrNotAuthenticated] unless the last [SyncEngine.CheckAvailability]
// reported [models.AccountStatusAvailable].
type SyncEngine interface {
	// CheckAvailability refreshes and returns the account availability. It
	// never fails: any error downgrades the state to
	// [models.AccountStatusUnknown].
	CheckAvailability(ctx context.Context) models.AccountStatus

	// Availability returns the state stored by the last check.
	Availability() models.AccountStatus

	// FullSync merges notes against every remote record and uploads the notes
	// whose local copy wins. It returns the full merged set. Authentication
	// and quota errors abort the pass and return notes unchanged; any other
	// per-note upload failure is recorded on that note and the pass goes on.
	FullSync(ctx context.Context, notes []models.Note) ([]models.Note, error)

	// UploadNote writes a single note with the fetch-then-save pattern and
	// at most one conflict retry. On failure the returned note is
	// pendingUpload with LastSyncError set.
	UploadNote(ctx context.Context, note models.Note) (models.Note, error)
}

// SyncScheduler turns local edits, a periodic timer and remote notifications
// into calls of the same sync pass.
type SyncScheduler interface {
	// NoteEdited arms the debounced sync, replacing any pending one.
	NoteEdited()

	// Start launches the periodic loop when sync is enabled. ctx bounds every
	// sync the scheduler starts on its own.
	Start(ctx context.Context)

	// Stop cancels the pending debounced sync and the periodic loop and waits
	// for the loop to exit.
	Stop()

	// SetSyncEnabled persists the flag and starts or stops the periodic loop.
	SetSyncEnabled(ctx context.Context, enabled bool) error

	// HandleNotification runs one sync for a notification addressed to this
	// client's subscription. It reports whether the notification was accepted.
	HandleNotification(ctx context.Context, n models.Notification) bool

	// SyncNow runs one sync pass and applies the result to the note book.
	SyncNow(ctx context.Context) error
}

// ClientAuthService manages the client's session with the record service.
type ClientAuthService interface {
	// Register creates an account and stores the session locally.
	Register(ctx context.Context, user models.User) error

	// Login authenticates and stores the session locally.
	Login(ctx context.Context, user models.User) error

	// Logout forgets the local session.
	Logout(ctx context.Context) error

	// RestoreSession loads a stored session into the record store client.
	// It reports false when there is no stored session.
	RestoreSession(ctx context.Context) (bool, error)

	// EnsureSubscription registers this client for Note change notifications
	// and returns its subscription id, generating one on first use.
	EnsureSubscription(ctx context.Context) (string, error)
}

// NotesStore is the part of the local store the note book needs.
type NotesStore interface {
	LoadNotes(ctx context.Context) ([]models.Note, error)
	SaveNotes(ctx context.Context, notes []models.Note) error
	LoadSyncEnabled(ctx context.Context) (bool, error)
	SaveSyncEnabled(ctx context.Context, enabled bool) error
}
