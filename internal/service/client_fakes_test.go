package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-six-notes/internal/adapter"
	"github.com/MKhiriev/go-six-notes/internal/store"
	"github.com/MKhiriev/go-six-notes/models"
)

// fakeRecordStore - удалённое хранилище в памяти с той же семантикой change tag,
// что и настоящий сервер.
type fakeRecordStore struct {
	mu       sync.Mutex
	records  map[string]models.NoteRecord
	tagSeq   int
	status   models.AccountStatus
	token    string
	saveErrs map[string]error
	saves    int
}

var _ adapter.RecordStore = (*fakeRecordStore)(nil)

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{
		records:  make(map[string]models.NoteRecord),
		status:   models.AccountStatusAvailable,
		saveErrs: make(map[string]error),
	}
}

func (f *fakeRecordStore) put(rec models.NoteRecord) models.NoteRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tagSeq++
	rec.ChangeTag = fmt.Sprintf("tag-%d", f.tagSeq)
	f.records[rec.RecordName] = rec
	return rec
}

func (f *fakeRecordStore) get(name string) (models.NoteRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[name]
	return rec, ok
}

func (f *fakeRecordStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func (f *fakeRecordStore) SetToken(token string) { f.token = token }
func (f *fakeRecordStore) Token() string         { return f.token }

func (f *fakeRecordStore) Register(_ context.Context, user models.User) (models.User, error) {
	return user, nil
}

func (f *fakeRecordStore) Login(_ context.Context, user models.User) (models.User, error) {
	return user, nil
}

func (f *fakeRecordStore) AccountStatus(_ context.Context) (models.AccountStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status, nil
}

func (f *fakeRecordStore) FetchAll(_ context.Context) ([]models.NoteRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.NoteRecord, 0, len(f.records))
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeRecordStore) FetchOne(_ context.Context, name string) (models.NoteRecord, error) {
	rec, ok := f.get(name)
	if !ok {
		return models.NoteRecord{}, adapter.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeRecordStore) Save(_ context.Context, rec models.NoteRecord) (models.NoteRecord, error) {
	f.mu.Lock()
	f.saves++
	if err, ok := f.saveErrs[rec.RecordName]; ok {
		f.mu.Unlock()
		return models.NoteRecord{}, err
	}
	current, exists := f.records[rec.RecordName]
	f.mu.Unlock()

	if exists && current.ChangeTag != rec.ChangeTag {
		return models.NoteRecord{}, &adapter.ConflictError{Server: current}
	}
	return f.put(rec), nil
}

func (f *fakeRecordStore) Subscribe(_ context.Context, _ string) error { return nil }

// memoryNotesStore - NotesStore в памяти.
type memoryNotesStore struct {
	mu      sync.Mutex
	notes   []models.Note
	enabled bool
	saveErr error
	saves   int
}

func (m *memoryNotesStore) LoadNotes(_ context.Context) ([]models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.notes == nil {
		return models.DefaultNotes(), nil
	}
	return models.CloneNotes(m.notes), nil
}

func (m *memoryNotesStore) SaveNotes(_ context.Context, notes []models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.notes = models.CloneNotes(notes)
	return nil
}

func (m *memoryNotesStore) LoadSyncEnabled(_ context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled, nil
}

func (m *memoryNotesStore) SaveSyncEnabled(_ context.Context, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.enabled = enabled
	return nil
}

var errBoom = errors.New("boom")

// memoryKV - store.LocalStorage в памяти.
type memoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string][]byte)}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, store.ErrLocalKeyNotFound
	}
	return v, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryKV) Close() error { return nil }
