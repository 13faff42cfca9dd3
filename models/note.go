// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NoteSlots is the fixed number of note slots. Slots are indexed 0..NoteSlots-1,
// created once on first run and never deleted.
const NoteSlots = 6

// recordNamePrefix is the prefix of every remote record name; the full name is
// the prefix followed by the slot index (e.g. "note_3").
const recordNamePrefix = "note_"

// NoteRecordType is the only record type stored by the remote record service.
const NoteRecordType = "Note"

// Note is one of the six locally edited note slots.
//
// Content, LastModified and CursorPosition are mirrored to the remote record.
// IsPlainText is local display state carried through sync untouched.
// RemoteChangeTag, LastSyncAttempt and LastSyncError are optional: nil means
// "absent", never an empty sentinel.
type Note struct {
	// ID is the slot index in [0, NoteSlots). It never changes.
	ID int `json:"id"`

	// Content is the note body. It is opaque text to the sync core.
	Content string `json:"content"`

	// LastModified is the time of the last local mutation, or the remote
	// modification time adopted during a merge.
	LastModified time.Time `json:"last_modified"`

	// CursorPosition is the editor cursor offset.
	CursorPosition int `json:"cursor_position"`

	// IsPlainText selects plain instead of rich rendering.
	IsPlainText bool `json:"is_plain_text"`

	// RemoteRecordName is the stable remote key, RecordName(ID) by default.
	RemoteRecordName string `json:"remote_record_name"`

	// RemoteChangeTag is the optimistic-concurrency token returned by the last
	// successful remote read or write.
	RemoteChangeTag *string `json:"remote_change_tag,omitempty"`

	// SyncState is the position of the note in the sync state machine.
	SyncState SyncState `json:"sync_state"`

	// LastSyncAttempt is the time of the last upload attempt for this note.
	LastSyncAttempt *time.Time `json:"last_sync_attempt,omitempty"`

	// LastSyncError is the message of the last failed upload, cleared on success.
	LastSyncError *string `json:"last_sync_error,omitempty"`
}

// NewNote returns the first-run state of the given slot.
func NewNote(slot int) Note {
	return Note{
		ID:               slot,
		RemoteRecordName: RecordName(slot),
		SyncState:        SyncStateNeverSynced,
	}
}

// DefaultNotes returns the six first-run notes ordered by slot.
func DefaultNotes() []Note {
	notes := make([]Note, NoteSlots)
	for i := range notes {
		notes[i] = NewNote(i)
	}
	return notes
}

// RecordName maps a slot index to its remote record name.
func RecordName(slot int) string {
	return recordNamePrefix + strconv.Itoa(slot)
}

// SlotFromRecordName parses a remote record name back to a slot index.
// It reports false for foreign names and for indexes outside [0, NoteSlots).
func SlotFromRecordName(name string) (int, bool) {
	rest, found := strings.CutPrefix(name, recordNamePrefix)
	if !found || rest == "" {
		return 0, false
	}

	slot, err := strconv.Atoi(rest)
	if err != nil || strconv.Itoa(slot) != rest {
		return 0, false
	}

	return slot, ValidSlot(slot)
}

// ValidSlot reports whether slot is one of the six note slots.
func ValidSlot(slot int) bool {
	return slot >= 0 && slot < NoteSlots
}

// Clone returns a deep copy of n, so optional fields are not shared between
// snapshots.
func (n Note) Clone() Note {
	c := n
	if n.RemoteChangeTag != nil {
		tag := *n.RemoteChangeTag
		c.RemoteChangeTag = &tag
	}
	if n.LastSyncAttempt != nil {
		at := *n.LastSyncAttempt
		c.LastSyncAttempt = &at
	}
	if n.LastSyncError != nil {
		msg := *n.LastSyncError
		c.LastSyncError = &msg
	}
	return c
}

// ChangeTag returns the remote change tag or an empty string when absent.
func (n Note) ChangeTag() string {
	if n.RemoteChangeTag == nil {
		return ""
	}
	return *n.RemoteChangeTag
}

// String implements fmt.Stringer for log output.
func (n Note) String() string {
	return fmt.Sprintf("note{id=%d state=%s modified=%s len=%d}",
		n.ID, n.SyncState, n.LastModified.Format(time.RFC3339Nano), len(n.Content))
}

// CloneNotes deep-copies a note slice.
func CloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

// TimePtr returns a pointer to a copy of t.
func TimePtr(t time.Time) *time.Time {
	return &t
}
