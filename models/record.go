// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// NoteRecord is the remote record service's view of a note.
//
// The remote store is authoritative for ChangeTag; the client decides Content
// and LastModified through the merge.
type NoteRecord struct {
	// RecordName is the record identity, "note_<slot>".
	RecordName string `json:"record_name"`

	// Content is the note body.
	Content string `json:"content"`

	// LastModified is the modification time written by the last client.
	LastModified time.Time `json:"last_modified"`

	// CursorPosition is carried along with the content.
	CursorPosition int `json:"cursor_position"`

	// ChangeTag is the opaque version token. On save it is the base tag the
	// client last read; empty means "create".
	ChangeTag string `json:"change_tag,omitempty"`
}

// RecordsPage is one page of GET /api/records.
type RecordsPage struct {
	// Records holds the page content ordered by record name.
	Records []NoteRecord `json:"records"`

	// NextCursor is the record name to continue after; empty on the last page.
	NextCursor string `json:"next_cursor,omitempty"`
}

// SubscriptionRequest registers interest in create/update/delete events on
// the Note record type.
type SubscriptionRequest struct {
	SubscriptionID string `json:"subscription_id"`
	RecordType     string `json:"record_type"`
}

// Notification reasons.
const (
	NotificationReasonCreated = "created"
	NotificationReasonUpdated = "updated"
	NotificationReasonDeleted = "deleted"
)

// Notification is a remote change signal delivered to subscribed clients.
type Notification struct {
	SubscriptionID string `json:"subscription_id"`
	RecordType     string `json:"record_type"`
	RecordName     string `json:"record_name"`
	Reason         string `json:"reason"`
	ChangeTag      string `json:"change_tag,omitempty"`
}
