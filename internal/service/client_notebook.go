// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/utils"
	"github.com/MKhiriev/go-six-notes/models"
)

// SyncStatus is the diagnostic state shown to the user.
type SyncStatus struct {
	Enabled   bool
	LastSync  *time.Time
	LastError *string
}

// NoteBook owns the in-memory six-note collection. Every mutation happens
// under one lock and is persisted before the lock is released; readers get
// deep copies. Observers receive the full set after every change.
type NoteBook struct {
	store  NotesStore
	logger *logger.Logger
	now    func() time.Time

	mu          sync.Mutex
	notes       []models.Note
	syncEnabled bool
	status      SyncStatus
	subscribers map[int]chan []models.Note
	nextSubID   int
}

func NewNoteBook(store NotesStore, logger *logger.Logger) *NoteBook {
	return &NoteBook{
		store:       store,
		logger:      logger,
		now:         utils.Now,
		notes:       models.DefaultNotes(),
		subscribers: make(map[int]chan []models.Note),
	}
}

// Load reads the notes and the sync flag from the local store. Missing slots
// are recreated, foreign ids dropped, and the normalised set written back.
func (b *NoteBook) Load(ctx context.Context) error {
	stored, err := b.store.LoadNotes(ctx)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	enabled, err := b.store.LoadSyncEnabled(ctx)
	if err != nil {
		return fmt.Errorf("load sync flag: %w", err)
	}

	notes, changed := normalizeNotes(stored)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.notes = notes
	b.syncEnabled = enabled
	if changed {
		b.logger.Info().Int("stored", len(stored)).Msg("note slots normalised")
		if err = b.store.SaveNotes(ctx, b.notes); err != nil {
			return fmt.Errorf("save notes: %w", err)
		}
	}

	return nil
}

func normalizeNotes(stored []models.Note) ([]models.Note, bool) {
	notes := models.DefaultNotes()
	seen := 0
	changed := len(stored) != models.NoteSlots

	for i, n := range stored {
		if !models.ValidSlot(n.ID) {
			changed = true
			continue
		}
		if n.ID != i {
			changed = true
		}
		if n.RemoteRecordName == "" {
			n.RemoteRecordName = models.RecordName(n.ID)
			changed = true
		}
		if !n.SyncState.Valid() {
			n.SyncState = models.SyncStateNeverSynced
			changed = true
		}
		notes[n.ID] = n.Clone()
		seen++
	}
	if seen != models.NoteSlots {
		changed = true
	}

	return notes, changed
}

// Notes returns a snapshot of all six notes.
func (b *NoteBook) Notes() []models.Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	return models.CloneNotes(b.notes)
}

func (b *NoteBook) Note(slot int) (models.Note, error) {
	if !models.ValidSlot(slot) {
		return models.Note{}, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.notes[slot].Clone(), nil
}

// Edit stores new content and cursor for slot. It reports whether the
// content changed, i.e. whether a sync should be scheduled. A cursor-only
// move is saved but does not mark the note dirty.
func (b *NoteBook) Edit(ctx context.Context, slot int, content string, cursor int) (models.Note, bool, error) {
	if !models.ValidSlot(slot) {
		return models.Note{}, false, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	note := b.notes[slot]
	if note.Content == content && note.CursorPosition == cursor {
		return note.Clone(), false, nil
	}

	dirty := note.Content != content
	note.CursorPosition = cursor
	if dirty {
		note.Content = content
		note.LastModified = b.now()
		note.SyncState = models.SyncStatePendingUpload
	}

	if err := b.commit(ctx, slot, note); err != nil {
		return models.Note{}, false, err
	}

	return note.Clone(), dirty, nil
}

func (b *NoteBook) SetPlainText(ctx context.Context, slot int, plain bool) error {
	if !models.ValidSlot(slot) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	note := b.notes[slot]
	if note.IsPlainText == plain {
		return nil
	}
	note.IsPlainText = plain

	return b.commit(ctx, slot, note)
}

// MarkPendingDownload flags a synced note whose remote record changed. It
// reports false for names that are not note slots.
func (b *NoteBook) MarkPendingDownload(ctx context.Context, recordName string) (bool, error) {
	slot, ok := models.SlotFromRecordName(recordName)
	if !ok {
		return false, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	note := b.notes[slot]
	if note.SyncState != models.SyncStateSynced {
		return true, nil
	}
	note.SyncState = models.SyncStatePendingDownload

	return true, b.commit(ctx, slot, note)
}

// ApplySync replaces the notes with the merge result of a pass that started
// from snapshot. A note whose content changed while the pass was in flight
// keeps the newer local content and stays pendingUpload; it only takes the
// change tag and diagnostics from the pass.
func (b *NoteBook) ApplySync(ctx context.Context, snapshot, merged []models.Note) error {
	if err := validateNoteSet(snapshot); err != nil {
		return err
	}
	if err := validateNoteSet(merged); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	next := models.CloneNotes(b.notes)
	for i := range next {
		current, before, after := b.notes[i], snapshot[i], merged[i].Clone()

		// a note another pass already settled to this result is not an edit
		if differs(current, before) && differs(current, after) {
			kept := current.Clone()
			kept.RemoteChangeTag = after.RemoteChangeTag
			kept.LastSyncAttempt = after.LastSyncAttempt
			kept.LastSyncError = after.LastSyncError
			kept.SyncState = models.SyncStatePendingUpload
			next[i] = kept
			continue
		}

		// display state is not part of the pass
		after.IsPlainText = current.IsPlainText
		if after.Content == current.Content {
			after.CursorPosition = current.CursorPosition
		}
		next[i] = after
	}

	if err := b.store.SaveNotes(ctx, next); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	b.notes = next
	b.publish()

	return nil
}

func differs(a, b models.Note) bool {
	return a.Content != b.Content || !a.LastModified.Equal(b.LastModified)
}

func (b *NoteBook) SyncEnabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.syncEnabled
}

func (b *NoteBook) SetSyncEnabled(ctx context.Context, enabled bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.store.SaveSyncEnabled(ctx, enabled); err != nil {
		return fmt.Errorf("save sync flag: %w", err)
	}
	b.syncEnabled = enabled

	return nil
}

// RecordPass stores the outcome of a finished sync pass.
func (b *NoteBook) RecordPass(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.status.LastSync = models.TimePtr(b.now())
	if err != nil {
		b.status.LastError = models.StringPtr(err.Error())
		return
	}
	b.status.LastError = nil
}

func (b *NoteBook) Status() SyncStatus {
	b.mu.Lock()
	defer b.mu.Unlock()

	status := SyncStatus{Enabled: b.syncEnabled}
	if b.status.LastSync != nil {
		status.LastSync = models.TimePtr(*b.status.LastSync)
	}
	if b.status.LastError != nil {
		status.LastError = models.StringPtr(*b.status.LastError)
	}
	return status
}

// Subscribe returns a channel that receives the note set after each change,
// and a function that unsubscribes. Slow readers only see the latest set.
func (b *NoteBook) Subscribe() (<-chan []models.Note, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextSubID
	b.nextSubID++
	ch := make(chan []models.Note, 1)
	b.subscribers[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(ch)
		}
	}
}

// commit persists note at slot and notifies subscribers. Callers hold b.mu.
func (b *NoteBook) commit(ctx context.Context, slot int, note models.Note) error {
	next := models.CloneNotes(b.notes)
	next[slot] = note

	if err := b.store.SaveNotes(ctx, next); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	b.notes = next
	b.publish()

	return nil
}

func (b *NoteBook) publish() {
	for _, ch := range b.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- models.CloneNotes(b.notes)
	}
}
