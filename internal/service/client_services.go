package service

import (
	"github.com/MKhiriev/go-six-notes/internal/adapter"
	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/store"
)

// ClientServices bundles the client-side services wired to one local store
// and one record service connection.
type ClientServices struct {
	Book      *NoteBook
	Auth      ClientAuthService
	Engine    SyncEngine
	Scheduler SyncScheduler
}

// NewClientServices wires the note book, sync engine and scheduler.
// Notifications are accepted only for subscriptionID.
func NewClientServices(localStore *store.ClientStorages, records adapter.RecordStore, subscriptionID string, workers config.Workers, logger *logger.Logger) *ClientServices {
	book := NewNoteBook(localStore, logger)
	engine := NewSyncEngine(records, logger)

	return &ClientServices{
		Book:      book,
		Auth:      NewClientAuthService(localStore, records),
		Engine:    engine,
		Scheduler: NewSyncScheduler(engine, book, workers.DebounceDelay, workers.SyncInterval, subscriptionID, logger),
	}
}
