package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/migrations"
)

// DB is a *sql.DB bound to a migration dialect and an error classifier.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// wrapError attaches sentinel to err, upgrading it to [ErrStoreUnavailable]
// when the classifier deems the failure transient.
func (db *DB) wrapError(sentinel, err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", ErrStoreUnavailable, sentinel, err)
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
