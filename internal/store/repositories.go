package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/logger"
)

// Repositories groups the server-side repositories sharing one PostgreSQL
// connection pool.
type Repositories struct {
	UserRepository         UserRepository
	RecordRepository       RecordRepository
	SubscriptionRepository SubscriptionRepository

	db *DB
}

// NewRepositories connects to PostgreSQL, applies pending migrations and
// wires every repository to the pool.
func NewRepositories(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Repositories, error) {
	logger.Info().Msg("creating new repositories...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Repositories{
		UserRepository:         NewUserRepository(db, logger),
		RecordRepository:       NewRecordRepository(db, logger),
		SubscriptionRepository: NewSubscriptionRepository(db, logger),
		db:                     db,
	}, nil
}

// Ping reports whether the database answers.
func (r *Repositories) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repositories) Close() error {
	return r.db.Close()
}
