package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/migrations"
)

// sqliteParams make a second client process wait for the lock instead of
// failing with SQLITE_BUSY.
const sqliteParams = "?_busy_timeout=5000&_journal_mode=WAL"

// NewConnectSQLite opens the client's note store, creating the parent
// directory if needed. The file itself is created by the driver.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if dir := filepath.Dir(cfg.DSN); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("error creating DB dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", cfg.DSN+sqliteParams)
	if err != nil {
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	// one writer at a time
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", cfg.DSN, err)
	}
	log.Debug().Str("dsn", cfg.DSN).Msg("local store opened")

	return &DB{DB: conn, dialect: migrations.DialectSQLite, logger: log}, nil
}
