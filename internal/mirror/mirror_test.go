package mirror

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBook is an in-memory NoteEditor.
type fakeBook struct {
	mu    sync.Mutex
	notes []models.Note
	subs  []chan []models.Note
}

func newFakeBook() *fakeBook {
	return &fakeBook{notes: models.DefaultNotes()}
}

func (b *fakeBook) Notes() []models.Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	return models.CloneNotes(b.notes)
}

func (b *fakeBook) Edit(_ context.Context, slot int, content string, cursor int) (models.Note, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	note := b.notes[slot]
	changed := note.Content != content
	note.Content = content
	note.CursorPosition = cursor
	b.notes[slot] = note
	return note, changed, nil
}

func (b *fakeBook) Subscribe() (<-chan []models.Note, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan []models.Note, 1)
	b.subs = append(b.subs, ch)
	return ch, func() {}
}

// set replaces a note the way a sync pass would and notifies subscribers.
func (b *fakeBook) set(slot int, content string) {
	b.mu.Lock()
	b.notes[slot].Content = content
	notes := models.CloneNotes(b.notes)
	subs := b.subs
	b.mu.Unlock()

	for _, ch := range subs {
		ch <- notes
	}
}

func (b *fakeBook) content(slot int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.notes[slot].Content
}

type countingListener struct {
	n atomic.Int32
}

func (l *countingListener) NoteEdited() { l.n.Add(1) }

func TestSlotFromFileName(t *testing.T) {
	tests := []struct {
		name     string
		wantSlot int
		wantOK   bool
	}{
		{"slot-0.txt", 0, true},
		{"slot-5.txt", 5, true},
		{"slot-6.txt", 0, false},
		{"slot-01.txt", 0, false},
		{"slot-.txt", 0, false},
		{"slot-1.md", 0, false},
		{"note-1.txt", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, ok := SlotFromFileName(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantSlot, slot)
				assert.Equal(t, tt.name, FileName(slot))
			}
		})
	}
}

func TestExport_WritesAllSlots(t *testing.T) {
	dir := t.TempDir()
	book := newFakeBook()
	book.notes[2].Content = "two"
	m := New(dir, book, nil, logger.Nop())

	require.NoError(t, m.Export(book.Notes()))

	for slot := range models.NoteSlots {
		raw, err := os.ReadFile(filepath.Join(dir, FileName(slot)))
		require.NoError(t, err)
		assert.Equal(t, book.notes[slot].Content, string(raw))
	}
}

func TestImport_EditsAndSchedules(t *testing.T) {
	dir := t.TempDir()
	book := newFakeBook()
	book.notes[1].CursorPosition = 50
	listener := &countingListener{}
	m := New(dir, book, listener, logger.Nop())

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName(1)), []byte("héllo"), 0o600))

	changed, err := m.Import(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "héllo", book.content(1))
	// курсор не выходит за длину текста в рунах
	assert.Equal(t, 5, book.Notes()[1].CursorPosition)
	assert.Equal(t, int32(1), listener.n.Load())

	// повторный импорт того же содержимого ничего не планирует
	changed, err = m.Import(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, int32(1), listener.n.Load())
}

func TestImport_MissingFile(t *testing.T) {
	m := New(t.TempDir(), newFakeBook(), nil, logger.Nop())

	_, err := m.Import(context.Background(), 3)

	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_MirrorsBothWays(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "notes")
	book := newFakeBook()
	listener := &countingListener{}
	m := New(dir, book, listener, logger.Nop())
	m.settle = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	path := filepath.Join(dir, FileName(4))
	require.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	// file → note
	require.NoError(t, os.WriteFile(path, []byte("from editor"), 0o600))
	require.Eventually(t, func() bool {
		return book.content(4) == "from editor"
	}, 2*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, listener.n.Load(), int32(1))

	// note → file
	book.set(0, "from sync")
	require.Eventually(t, func() bool {
		raw, err := os.ReadFile(filepath.Join(dir, FileName(0)))
		return err == nil && string(raw) == "from sync"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
