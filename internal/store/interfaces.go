// Package store holds the persistence layer: PostgreSQL repositories for the
// record service and the SQLite key-value store used by the sync client.
package store

import (
	"context"

	"github.com/MKhiriev/go-six-notes/models"
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// RecordRepository persists note records with optimistic concurrency on the
// change tag.
type RecordRepository interface {
	// ListRecords returns up to limit records ordered by name, starting after
	// cursor. NextCursor is set when more records follow.
	ListRecords(ctx context.Context, userID int64, cursor string, limit int) (models.RecordsPage, error)

	// GetRecord returns [ErrRecordNotFound] when the record does not exist.
	GetRecord(ctx context.Context, userID int64, recordName string) (models.NoteRecord, error)

	// SaveRecord writes record if record.ChangeTag matches the stored tag (or
	// the record does not exist yet) and stamps it with newTag. A mismatch
	// yields a [*VersionConflictError] carrying the stored record.
	SaveRecord(ctx context.Context, userID int64, record models.NoteRecord, newTag string) (models.NoteRecord, error)
}

// SubscriptionRepository persists notification subscriptions.
type SubscriptionRepository interface {
	SaveSubscription(ctx context.Context, userID int64, sub models.SubscriptionRequest) error
	ListSubscriptions(ctx context.Context, userID int64) ([]models.SubscriptionRequest, error)
}
