package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/models"
)

// ClientStorages groups the client-side storage. The raw [LocalStorage] is
// exposed for components that persist opaque values; the typed helpers cover
// the keys the sync client owns.
type ClientStorages struct {
	LocalStorage LocalStorage
}

// NewClientStorages opens (creating if needed) the SQLite file at cfg.DB.DSN,
// runs pending migrations and wires the key-value store.
func NewClientStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		LocalStorage: NewLocalKVStorage(db, logger),
	}, nil
}

func (s *ClientStorages) Close() error {
	return s.LocalStorage.Close()
}

// LoadNotes returns the persisted note slots as stored, or the six first-run
// notes when nothing was saved yet. Slot normalisation is up to the caller.
func (s *ClientStorages) LoadNotes(ctx context.Context) ([]models.Note, error) {
	raw, err := s.LocalStorage.Get(ctx, KeyNotes)
	if errors.Is(err, ErrLocalKeyNotFound) {
		return models.DefaultNotes(), nil
	}
	if err != nil {
		return nil, err
	}

	var notes []models.Note
	if err = json.Unmarshal(raw, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	return notes, nil
}

func (s *ClientStorages) SaveNotes(ctx context.Context, notes []models.Note) error {
	raw, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	return s.LocalStorage.Set(ctx, KeyNotes, raw)
}

// LoadSyncEnabled defaults to false: sync is opt-in.
func (s *ClientStorages) LoadSyncEnabled(ctx context.Context) (bool, error) {
	raw, err := s.LocalStorage.Get(ctx, KeySyncEnabled)
	if errors.Is(err, ErrLocalKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(string(raw))
}

func (s *ClientStorages) SaveSyncEnabled(ctx context.Context, enabled bool) error {
	return s.LocalStorage.Set(ctx, KeySyncEnabled, []byte(strconv.FormatBool(enabled)))
}

// LoadSession returns the stored session or [ErrLocalKeyNotFound].
func (s *ClientStorages) LoadSession(ctx context.Context) (models.Session, error) {
	raw, err := s.LocalStorage.Get(ctx, KeySession)
	if err != nil {
		return models.Session{}, err
	}

	var session models.Session
	if err = json.Unmarshal(raw, &session); err != nil {
		return models.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return session, nil
}

func (s *ClientStorages) SaveSession(ctx context.Context, session models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.LocalStorage.Set(ctx, KeySession, raw)
}

// LoadString returns def when key was never set.
func (s *ClientStorages) LoadString(ctx context.Context, key, def string) (string, error) {
	raw, err := s.LocalStorage.Get(ctx, key)
	if errors.Is(err, ErrLocalKeyNotFound) {
		return def, nil
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *ClientStorages) SaveString(ctx context.Context, key, value string) error {
	return s.LocalStorage.Set(ctx, key, []byte(value))
}

func (s *ClientStorages) LoadInt(ctx context.Context, key string, def int) (int, error) {
	raw, err := s.LoadString(ctx, key, strconv.Itoa(def))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(raw)
}

func (s *ClientStorages) SaveInt(ctx context.Context, key string, value int) error {
	return s.SaveString(ctx, key, strconv.Itoa(value))
}
