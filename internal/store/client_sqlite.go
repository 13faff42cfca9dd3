package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-six-notes/internal/logger"
)

// localKVStorage is the SQLite implementation of [LocalStorage] over the
// single "kv" table.
type localKVStorage struct {
	*DB
	logger *logger.Logger
}

func NewLocalKVStorage(db *DB, logger *logger.Logger) LocalStorage {
	return &localKVStorage{
		DB:     db,
		logger: logger,
	}
}

func (l *localKVStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := l.DB.QueryRowContext(ctx, getLocalValue, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrLocalKeyNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*localKVStorage.Get").Str("key", key).Msg("failed to read local value")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

func (l *localKVStorage) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}

	if _, err := l.DB.ExecContext(ctx, setLocalValue, key, value); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localKVStorage.Set").Str("key", key).Msg("failed to write local value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
