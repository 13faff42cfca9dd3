// Package mirror keeps a directory of plain text files in step with the six
// note slots. Each slot is mirrored to slot-N.txt: edits made to the files
// by any editor are imported into the note book and schedule a sync, and
// notes changed by a sync pass are written back to their files.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/models"
	"github.com/fsnotify/fsnotify"
)

const (
	filePrefix = "slot-"
	fileSuffix = ".txt"

	// editors often write a file in several steps; events for the same slot
	// within this window are imported once.
	defaultSettleDelay = 100 * time.Millisecond
)

// NoteEditor is the part of the note book the mirror reads and writes.
type NoteEditor interface {
	Notes() []models.Note
	Edit(ctx context.Context, slot int, content string, cursor int) (models.Note, bool, error)
	Subscribe() (<-chan []models.Note, func())
}

// EditListener is told about every imported edit.
type EditListener interface {
	NoteEdited()
}

type Mirror struct {
	dir    string
	book   NoteEditor
	edits  EditListener
	settle time.Duration
	logger *logger.Logger
}

func New(dir string, book NoteEditor, edits EditListener, logger *logger.Logger) *Mirror {
	return &Mirror{
		dir:    dir,
		book:   book,
		edits:  edits,
		settle: defaultSettleDelay,
		logger: logger,
	}
}

// FileName returns the mirror file name of slot.
func FileName(slot int) string {
	return filePrefix + strconv.Itoa(slot) + fileSuffix
}

// SlotFromFileName parses a mirror file name (base name only).
func SlotFromFileName(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, filePrefix)
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, fileSuffix)
	if !ok || rest == "" {
		return 0, false
	}
	slot, err := strconv.Atoi(rest)
	if err != nil || strconv.Itoa(slot) != rest {
		return 0, false
	}
	return slot, models.ValidSlot(slot)
}

// Export writes every note whose file content differs.
func (m *Mirror) Export(notes []models.Note) error {
	var errs []error
	for _, note := range notes {
		path := filepath.Join(m.dir, FileName(note.ID))

		current, err := os.ReadFile(path)
		if err == nil && string(current) == note.Content {
			continue
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("read %s: %w", path, err))
			continue
		}

		if err = os.WriteFile(path, []byte(note.Content), 0o600); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

// Import loads the file of slot into the note book. It reports whether the
// content changed; a changed note schedules a sync.
func (m *Mirror) Import(ctx context.Context, slot int) (bool, error) {
	raw, err := os.ReadFile(filepath.Join(m.dir, FileName(slot)))
	if err != nil {
		return false, fmt.Errorf("read slot %d: %w", slot, err)
	}
	content := string(raw)

	cursor := 0
	for _, note := range m.book.Notes() {
		if note.ID == slot {
			cursor = note.CursorPosition
		}
	}
	cursor = min(cursor, utf8.RuneCountInString(content))

	_, changed, err := m.book.Edit(ctx, slot, content, cursor)
	if err != nil {
		return false, err
	}
	if changed && m.edits != nil {
		m.edits.NoteEdited()
	}
	return changed, nil
}

// Run exports the current notes and then mirrors changes both ways until
// ctx is done.
func (m *Mirror) Run(ctx context.Context) error {
	if err := os.MkdirAll(m.dir, 0o700); err != nil {
		return fmt.Errorf("create mirror dir: %w", err)
	}
	if err := m.Export(m.book.Notes()); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err = watcher.Add(m.dir); err != nil {
		return fmt.Errorf("watch %s: %w", m.dir, err)
	}

	updates, unsubscribe := m.book.Subscribe()
	defer unsubscribe()

	m.logger.Info().Str("dir", m.dir).Msg("mirror started")

	pending := make(map[int]struct{})
	settle := time.NewTimer(m.settle)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slot, ok := SlotFromFileName(filepath.Base(event.Name))
			if !ok {
				continue
			}
			pending[slot] = struct{}{}
			settle.Reset(m.settle)

		case <-settle.C:
			for slot := range pending {
				if _, err := m.Import(ctx, slot); err != nil {
					m.logger.Err(err).Str("func", "*Mirror.Run").Int("slot", slot).Msg("import failed")
				}
			}
			clear(pending)

		case notes, ok := <-updates:
			if !ok {
				return nil
			}
			if err := m.Export(notes); err != nil {
				m.logger.Err(err).Str("func", "*Mirror.Run").Msg("export failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			m.logger.Err(err).Str("func", "*Mirror.Run").Msg("fsnotify error")
		}
	}
}
