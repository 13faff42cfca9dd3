package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-six-notes/internal/adapter"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/utils"
	"github.com/MKhiriev/go-six-notes/models"
)

type syncEngine struct {
	records adapter.RecordStore
	logger  *logger.Logger
	now     func() time.Time

	mu           sync.RWMutex
	availability models.AccountStatus
}

// NewSyncEngine creates a [SyncEngine] over records. The engine starts in
// [models.AccountStatusUnknown] until the first CheckAvailability.
func NewSyncEngine(records adapter.RecordStore, logger *logger.Logger) SyncEngine {
	return &syncEngine{
		records:      records,
		logger:       logger,
		now:          utils.Now,
		availability: models.AccountStatusUnknown,
	}
}

func (e *syncEngine) CheckAvailability(ctx context.Context) models.AccountStatus {
	status, err := e.records.AccountStatus(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Str("func", "*syncEngine.CheckAvailability").Msg("account status check failed")
		status = models.AccountStatusUnknown
	}
	if !status.Valid() {
		status = models.AccountStatusUnknown
	}

	e.mu.Lock()
	e.availability = status
	e.mu.Unlock()

	return status
}

func (e *syncEngine) Availability() models.AccountStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.availability
}

func (e *syncEngine) requireAvailable() error {
	if status := e.Availability(); status != models.AccountStatusAvailable {
		return fmt.Errorf("%w: account is %s", ErrNotAuthenticated, status)
	}
	return nil
}

func (e *syncEngine) FullSync(ctx context.Context, notes []models.Note) ([]models.Note, error) {
	snapshot := models.CloneNotes(notes)

	if err := e.requireAvailable(); err != nil {
		return snapshot, err
	}
	if err := validateNoteSet(snapshot); err != nil {
		return snapshot, err
	}

	log := e.logger.With().Str("func", "*syncEngine.FullSync").Logger()

	records, err := e.records.FetchAll(ctx)
	if err != nil {
		log.Err(err).Msg("failed to fetch remote records")
		return snapshot, classifyFatal(fmt.Errorf("fetch remote records: %w", err))
	}

	bySlot := make(map[int]models.NoteRecord, len(records))
	for _, rec := range records {
		slot, ok := models.SlotFromRecordName(rec.RecordName)
		if !ok {
			log.Debug().Str("record_name", rec.RecordName).Msg("ignoring record outside note slots")
			continue
		}
		bySlot[slot] = rec
	}

	merged := make([]models.Note, len(snapshot))
	for i, local := range snapshot {
		var remote *models.NoteRecord
		if rec, ok := bySlot[local.ID]; ok {
			remote = &rec
		}

		res := ResolveConflict(local, remote)
		if res.Outcome != OutcomeUpload {
			log.Debug().Int("slot", local.ID).Stringer("outcome", res.Outcome).Msg("slot merged")
			merged[i] = res.Note
			continue
		}

		uploaded, err := e.UploadNote(ctx, res.Note)
		if err != nil {
			if ctx.Err() != nil {
				return snapshot, ctx.Err()
			}
			if fatal := classifyFatal(err); isFatal(fatal) {
				log.Err(err).Int("slot", local.ID).Msg("sync pass aborted")
				return snapshot, fatal
			}
			log.Warn().Err(err).Int("slot", local.ID).Msg("upload failed, note stays pending")
		} else {
			log.Debug().Int("slot", local.ID).Stringer("outcome", res.Outcome).Msg("slot uploaded")
		}
		merged[i] = uploaded
	}

	return merged, nil
}

func (e *syncEngine) UploadNote(ctx context.Context, note models.Note) (models.Note, error) {
	note = note.Clone()
	note.LastSyncAttempt = models.TimePtr(e.now())

	if err := e.requireAvailable(); err != nil {
		return failUpload(note, err)
	}

	name := recordNameOf(note)
	current, err := e.records.FetchOne(ctx, name)
	switch {
	case errors.Is(err, adapter.ErrRecordNotFound):
		current = models.NoteRecord{RecordName: name}
	case err != nil:
		return failUpload(note, err)
	}

	saved, err := e.save(ctx, note, current.ChangeTag)

	var conflict *adapter.ConflictError
	if errors.As(err, &conflict) {
		server := conflict.Server
		if !note.LastModified.After(server.LastModified) {
			e.logger.Debug().Int("slot", note.ID).Msg("server copy is newer after conflict, adopting it")
			return adoptRecord(note, server), nil
		}

		saved, err = e.save(ctx, note, server.ChangeTag)
		if errors.As(err, &conflict) {
			err = fmt.Errorf("%w: %w", ErrConflictRetryExhausted, err)
		}
	}
	if err != nil {
		return failUpload(note, err)
	}

	note.RemoteChangeTag = tagPtr(saved.ChangeTag)
	note.SyncState = models.SyncStateSynced
	note.LastSyncError = nil
	return note, nil
}

func (e *syncEngine) save(ctx context.Context, note models.Note, baseTag string) (models.NoteRecord, error) {
	return e.records.Save(ctx, models.NoteRecord{
		RecordName:     recordNameOf(note),
		Content:        note.Content,
		LastModified:   note.LastModified,
		CursorPosition: note.CursorPosition,
		ChangeTag:      baseTag,
	})
}

func failUpload(note models.Note, err error) (models.Note, error) {
	note.SyncState = models.SyncStatePendingUpload
	note.LastSyncError = models.StringPtr(err.Error())
	return note, err
}

func recordNameOf(note models.Note) string {
	if note.RemoteRecordName != "" {
		return note.RemoteRecordName
	}
	return models.RecordName(note.ID)
}

// classifyFatal tags remote authentication failures with [ErrNotAuthenticated]
// so callers need a single check.
func classifyFatal(err error) error {
	if errors.Is(err, adapter.ErrNotAuthenticated) && !errors.Is(err, ErrNotAuthenticated) {
		return fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}
	return err
}

func isFatal(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) || errors.Is(err, adapter.ErrQuotaExceeded)
}

func validateNoteSet(notes []models.Note) error {
	if len(notes) != models.NoteSlots {
		return fmt.Errorf("%w: got %d notes", ErrInvalidNoteSet, len(notes))
	}
	for i, n := range notes {
		if n.ID != i {
			return fmt.Errorf("%w: position %d holds note %d", ErrInvalidNoteSet, i, n.ID)
		}
	}
	return nil
}
