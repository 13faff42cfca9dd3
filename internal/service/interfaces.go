package service

import (
	"context"

	"github.com/MKhiriev/go-six-notes/models"
)

// RecordService is the server side of the record store: a private namespace
// of "Note" records per user with optimistic concurrency on the change tag.
type RecordService interface {
	// ListRecords returns one page of the user's records ordered by name.
	ListRecords(ctx context.Context, userID int64, cursor string, limit int) (models.RecordsPage, error)

	// GetRecord returns a single record or store.ErrRecordNotFound.
	GetRecord(ctx context.Context, userID int64, recordName string) (models.NoteRecord, error)

	// SaveRecord stores record when its ChangeTag matches the stored one and
	// returns the record with a freshly issued tag. A mismatch returns a
	// *store.VersionConflictError carrying the current server record.
	SaveRecord(ctx context.Context, userID int64, record models.NoteRecord) (models.NoteRecord, error)

	// Subscribe registers a change subscription for the user.
	Subscribe(ctx context.Context, userID int64, req models.SubscriptionRequest) error
}

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// AccountStatus never fails: every problem is folded into a status.
	AccountStatus(ctx context.Context, tokenString string) models.AccountStatus

	// CheckUserAllowed returns ErrAccountRestricted for restricted users.
	CheckUserAllowed(ctx context.Context, userID int64) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetServerInfo(ctx context.Context) models.ServerInfo
}

// Notifier fans change notifications out to connected clients.
type Notifier interface {
	Publish(userID int64, n models.Notification)
}

// RecordServiceWrapper defines middleware composition for RecordService.
// Implementations wrap an existing RecordService to add behavior such as
// logging or validating.
type RecordServiceWrapper interface {
	Wrap(RecordService) RecordService // returns a decorated RecordService applying additional behavior
}
