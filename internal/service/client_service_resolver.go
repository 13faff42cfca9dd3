// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-six-notes/models"
)

// Outcome is the decision of [ResolveConflict] for one slot.
type Outcome int

const (
	// OutcomeUpload means the local copy wins and must be written remotely.
	OutcomeUpload Outcome = iota
	// OutcomeAdoptRemote means the remote copy is newer and replaced the
	// local content.
	OutcomeAdoptRemote
	// OutcomeInSync means both sides already agree; only the change tag was
	// taken from the remote record.
	OutcomeInSync
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpload:
		return "upload"
	case OutcomeAdoptRemote:
		return "adoptRemote"
	case OutcomeInSync:
		return "inSync"
	default:
		return "unknown"
	}
}

// Resolution is the merged note together with the decision that produced it.
type Resolution struct {
	Note    models.Note
	Outcome Outcome
}

// ResolveConflict merges local with the remote record of the same slot using
// last-write-wins on LastModified. remote is nil when the slot has no remote
// record. A remote record that does not belong to local's slot is treated as
// absent.
//
// Equal timestamps keep the local content and only take the change tag: the
// content is assumed identical, so no upload is scheduled.
func ResolveConflict(local models.Note, remote *models.NoteRecord) Resolution {
	note := local.Clone()

	if remote == nil || !belongsToSlot(*remote, local.ID) {
		note.SyncState = models.SyncStatePendingUpload
		return Resolution{Note: note, Outcome: OutcomeUpload}
	}

	switch {
	case remote.LastModified.After(local.LastModified):
		return Resolution{Note: adoptRecord(note, *remote), Outcome: OutcomeAdoptRemote}

	case local.LastModified.After(remote.LastModified) && local.SyncState != models.SyncStateSynced:
		note.SyncState = models.SyncStatePendingUpload
		return Resolution{Note: note, Outcome: OutcomeUpload}

	default:
		note.RemoteChangeTag = tagPtr(remote.ChangeTag)
		note.SyncState = models.SyncStateSynced
		return Resolution{Note: note, Outcome: OutcomeInSync}
	}
}

func belongsToSlot(record models.NoteRecord, slot int) bool {
	recordSlot, ok := models.SlotFromRecordName(record.RecordName)
	return ok && recordSlot == slot
}

// adoptRecord replaces the synced fields of note with record.
func adoptRecord(note models.Note, record models.NoteRecord) models.Note {
	note.Content = record.Content
	note.CursorPosition = record.CursorPosition
	note.LastModified = record.LastModified
	note.RemoteChangeTag = tagPtr(record.ChangeTag)
	note.SyncState = models.SyncStateSynced
	note.LastSyncError = nil
	return note
}

func tagPtr(tag string) *string {
	if tag == "" {
		return nil
	}
	return models.StringPtr(tag)
}
