package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-six-notes/internal/service"
	"github.com/MKhiriev/go-six-notes/models"
)

const previewWidth = 40

// RenderNoteList renders one line per slot; selected is marked.
func RenderNoteList(notes []models.Note, selected int) string {
	var b strings.Builder
	for i, note := range notes {
		if i > 0 {
			b.WriteString("\n")
		}

		marker := "  "
		if note.ID == selected {
			marker = "> "
		}
		preview := fitText(firstLine(note.Content), previewWidth)
		if preview == "" {
			preview = helpStyle.Render("(empty)")
		}

		line := fmt.Sprintf("%s[%d] %-*s  %s", marker, note.ID, previewWidth, preview, renderState(note.SyncState))
		if note.ID == selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
	}

	return renderPage("NOTES", b.String())
}

// RenderNote renders a single note with its sync diagnostics.
func RenderNote(note models.Note) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Slot: %d (%s)\n", note.ID, note.RemoteRecordName)
	fmt.Fprintf(&b, "State: %s\n", renderState(note.SyncState))
	fmt.Fprintf(&b, "Modified: %s\n", formatTime(&note.LastModified))
	fmt.Fprintf(&b, "Last sync attempt: %s\n", formatTime(note.LastSyncAttempt))
	if note.LastSyncError != nil {
		fmt.Fprintf(&b, "Last sync error: %s\n", errorStyle.Render(valueOrDash(note.LastSyncError)))
	}
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(note.Content))

	return renderPage(fmt.Sprintf("NOTE %d", note.ID), b.String())
}

// RenderStatus renders the account and sync summary.
func RenderStatus(login string, account models.AccountStatus, sync service.SyncStatus, notes []models.Note) string {
	var b strings.Builder

	if login == "" {
		login = "-"
	}
	fmt.Fprintf(&b, "Login: %s\n", login)
	fmt.Fprintf(&b, "Account: %s\n", renderAccount(account))

	enabled := badStyle.Render("off")
	if sync.Enabled {
		enabled = okStyle.Render("on")
	}
	fmt.Fprintf(&b, "Sync: %s\n", enabled)
	fmt.Fprintf(&b, "Last sync: %s\n", formatTime(sync.LastSync))
	if sync.LastError != nil {
		fmt.Fprintf(&b, "Last error: %s\n", errorStyle.Render(*sync.LastError))
	}

	counts := make(map[models.SyncState]int)
	for _, note := range notes {
		counts[note.SyncState]++
	}
	fmt.Fprintf(&b, "Notes: %d synced, %d pending upload, %d pending download, %d never synced",
		counts[models.SyncStateSynced],
		counts[models.SyncStatePendingUpload],
		counts[models.SyncStatePendingDownload],
		counts[models.SyncStateNeverSynced])

	return renderPage("STATUS", b.String())
}

func renderState(state models.SyncState) string {
	switch state {
	case models.SyncStateSynced:
		return okStyle.Render(string(state))
	case models.SyncStatePendingUpload, models.SyncStatePendingDownload:
		return pendingStyle.Render(string(state))
	case models.SyncStateConflict:
		return badStyle.Render(string(state))
	default:
		return helpStyle.Render(string(state))
	}
}

func renderAccount(status models.AccountStatus) string {
	switch status {
	case models.AccountStatusAvailable:
		return okStyle.Render(string(status))
	case models.AccountStatusTemporarilyUnavailable, models.AccountStatusUnknown:
		return pendingStyle.Render(string(status))
	default:
		return badStyle.Render(string(status))
	}
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
