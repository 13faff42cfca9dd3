package client

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/go-six-notes/internal/adapter"
	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/mirror"
	"github.com/MKhiriev/go-six-notes/internal/service"
	"github.com/MKhiriev/go-six-notes/internal/store"
	"github.com/MKhiriev/go-six-notes/internal/utils"
	"github.com/MKhiriev/go-six-notes/internal/workers"
	"github.com/MKhiriev/go-six-notes/models"
)

// Status is the snapshot printed by the status command.
type Status struct {
	Login   string
	Account models.AccountStatus
	Sync    service.SyncStatus
	Notes   []models.Note
}

// App is the note client: the note book, the sync machinery and the session,
// wired to one local store and one record service.
type App struct {
	cfg      *config.ClientConfig
	local    *store.ClientStorages
	records  adapter.RecordStore
	services *service.ClientServices
	logger   *logger.Logger
}

// NewApp opens the local store, connects the record store client and loads
// the notes and the saved session.
func NewApp(ctx context.Context, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	local, err := store.NewClientStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	records, err := adapter.NewHTTPRecordStore(cfg.Adapter, cfg.App, logger)
	if err != nil {
		_ = local.Close()
		return nil, fmt.Errorf("create record store client: %w", err)
	}

	app, err := newApp(ctx, cfg, local, records, logger)
	if err != nil {
		_ = local.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, cfg *config.ClientConfig, local *store.ClientStorages, records adapter.RecordStore, logger *logger.Logger) (*App, error) {
	subscriptionID, err := loadSubscriptionID(ctx, local)
	if err != nil {
		return nil, err
	}

	services := service.NewClientServices(local, records, subscriptionID, cfg.Workers, logger)
	if _, err = services.Auth.RestoreSession(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if err = services.Book.Load(ctx); err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}

	return &App{
		cfg:      cfg,
		local:    local,
		records:  records,
		services: services,
		logger:   logger,
	}, nil
}

// loadSubscriptionID returns the persisted subscription id, generating and
// saving one on first run.
func loadSubscriptionID(ctx context.Context, local *store.ClientStorages) (string, error) {
	id, err := local.LoadString(ctx, store.KeySubscriptionID, "")
	if err != nil {
		return "", fmt.Errorf("load subscription id: %w", err)
	}
	if id != "" {
		return id, nil
	}

	id = utils.NewUUIDGenerator().Generate()
	if err = local.SaveString(ctx, store.KeySubscriptionID, id); err != nil {
		return "", fmt.Errorf("save subscription id: %w", err)
	}
	return id, nil
}

func (a *App) Close() error {
	a.services.Scheduler.Stop()
	return a.local.Close()
}

func (a *App) Register(ctx context.Context, login, password string) error {
	if err := a.services.Auth.Register(ctx, models.User{Login: login, Password: password}); err != nil {
		return err
	}
	a.subscribe(ctx)
	return nil
}

func (a *App) Login(ctx context.Context, login, password string) error {
	if err := a.services.Auth.Login(ctx, models.User{Login: login, Password: password}); err != nil {
		return err
	}
	a.subscribe(ctx)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	return a.services.Auth.Logout(ctx)
}

// subscribe registers for change notifications. A failure only delays
// remote changes until the next periodic pass.
func (a *App) subscribe(ctx context.Context) {
	if _, err := a.services.Auth.EnsureSubscription(ctx); err != nil {
		a.logger.Warn().Err(err).Str("func", "*App.subscribe").Msg("subscription failed")
	}
}

func (a *App) Notes() []models.Note {
	return a.services.Book.Notes()
}

// Note returns slot, or the selected slot when slot is negative.
func (a *App) Note(ctx context.Context, slot int) (models.Note, error) {
	if slot < 0 {
		selected, err := a.Selected(ctx)
		if err != nil {
			return models.Note{}, err
		}
		slot = selected
	}
	return a.services.Book.Note(slot)
}

// Selected returns the persisted selected slot, 0 on first run.
func (a *App) Selected(ctx context.Context) (int, error) {
	slot, err := a.local.LoadInt(ctx, store.KeySelectedIndex, 0)
	if err != nil {
		return 0, fmt.Errorf("load selected slot: %w", err)
	}
	if !models.ValidSlot(slot) {
		return 0, nil
	}
	return slot, nil
}

func (a *App) Select(ctx context.Context, slot int) error {
	if !models.ValidSlot(slot) {
		return fmt.Errorf("%w: %d", service.ErrInvalidSlot, slot)
	}
	return a.local.SaveInt(ctx, store.KeySelectedIndex, slot)
}

// Edit replaces the content of slot and puts the cursor at its end. It
// reports whether the content changed.
func (a *App) Edit(ctx context.Context, slot int, content string) (models.Note, bool, error) {
	note, changed, err := a.services.Book.Edit(ctx, slot, content, utf8.RuneCountInString(content))
	if err != nil {
		return models.Note{}, false, err
	}
	if changed {
		a.services.Scheduler.NoteEdited()
	}
	return note, changed, nil
}

func (a *App) SetPlainText(ctx context.Context, slot int, plain bool) error {
	return a.services.Book.SetPlainText(ctx, slot, plain)
}

func (a *App) SetSyncEnabled(ctx context.Context, enabled bool) error {
	return a.services.Scheduler.SetSyncEnabled(ctx, enabled)
}

func (a *App) SyncNow(ctx context.Context) error {
	return a.services.Scheduler.SyncNow(ctx)
}

// SyncIfEnabled runs one pass when sync is on. Short-lived commands use it
// instead of waiting for the debounce timer.
func (a *App) SyncIfEnabled(ctx context.Context) error {
	err := a.services.Scheduler.SyncNow(ctx)
	if errors.Is(err, service.ErrSyncDisabled) {
		return nil
	}
	return err
}

func (a *App) Status(ctx context.Context) (Status, error) {
	login := ""
	session, err := a.local.LoadSession(ctx)
	switch {
	case err == nil:
		login = session.Login
	case !errors.Is(err, store.ErrLocalKeyNotFound):
		return Status{}, fmt.Errorf("load session: %w", err)
	}

	return Status{
		Login:   login,
		Account: a.services.Engine.CheckAvailability(ctx),
		Sync:    a.services.Book.Status(),
		Notes:   a.services.Book.Notes(),
	}, nil
}

// Watch keeps the client running: periodic and debounced sync, remote change
// notifications and, when mirrorDir is set, the mirror directory. It blocks
// until ctx is done.
func (a *App) Watch(ctx context.Context, mirrorDir string) error {
	scheduler := a.services.Scheduler

	ws := workers.NewWorkers(a.logger).
		Add("scheduler", workers.WorkerFunc(func(ctx context.Context) error {
			scheduler.Start(ctx)
			if err := a.SyncIfEnabled(ctx); err != nil {
				a.logger.Warn().Err(err).Msg("initial sync failed")
			}
			<-ctx.Done()
			scheduler.Stop()
			return nil
		}))

	listener, err := adapter.NewNotificationListener(a.cfg.Adapter, a.records, a.logger)
	if err != nil {
		return err
	}
	ws.Add("notifications", workers.WorkerFunc(func(ctx context.Context) error {
		a.subscribe(ctx)
		return listener.Listen(ctx, func(ctx context.Context, n models.Notification) {
			scheduler.HandleNotification(ctx, n)
		})
	}))

	if mirrorDir != "" {
		ws.Add("mirror", mirror.New(mirrorDir, a.services.Book, scheduler, a.logger))
	}

	return ws.Run(ctx)
}
