package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/models"
)

const (
	defaultDebounceDelay = 2 * time.Second
	defaultSyncInterval  = 10 * time.Second
)

type syncScheduler struct {
	engine         SyncEngine
	book           *NoteBook
	logger         *logger.Logger
	debounce       time.Duration
	interval       time.Duration
	subscriptionID string

	mu       sync.Mutex
	baseCtx  context.Context
	timer    *time.Timer
	timerGen uint64
	loop     *periodicLoop
}

// periodicLoop is one run of the ticker goroutine; done closes when it exits.
type periodicLoop struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSyncScheduler creates a [SyncScheduler]. Non-positive durations fall
// back to a 2s debounce and a 10s period. Notifications are accepted only
// for subscriptionID.
func NewSyncScheduler(engine SyncEngine, book *NoteBook, debounce, interval time.Duration, subscriptionID string, logger *logger.Logger) SyncScheduler {
	if debounce <= 0 {
		debounce = defaultDebounceDelay
	}
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	return &syncScheduler{
		engine:         engine,
		book:           book,
		logger:         logger,
		debounce:       debounce,
		interval:       interval,
		subscriptionID: subscriptionID,
		baseCtx:        context.Background(),
	}
}

// NoteEdited implements SyncScheduler. Only the most recent call survives:
// each one stops the armed timer and invalidates it by generation, so a timer
// that already fired but has not yet taken the lock does nothing.
func (s *syncScheduler) NoteEdited() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timerGen++
	gen := s.timerGen

	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		if gen != s.timerGen {
			s.mu.Unlock()
			return
		}
		s.timer = nil
		ctx := s.baseCtx
		s.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		s.logSync("debounce", s.SyncNow(ctx))
	})
}

// Start implements SyncScheduler.
func (s *syncScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()

	if s.book.SyncEnabled() {
		s.startLoop()
	}
}

// Stop implements SyncScheduler.
func (s *syncScheduler) Stop() {
	s.cancelDebounce()
	s.stopLoop()
}

func (s *syncScheduler) SetSyncEnabled(ctx context.Context, enabled bool) error {
	if err := s.book.SetSyncEnabled(ctx, enabled); err != nil {
		return err
	}

	if enabled {
		s.startLoop()
		return nil
	}

	s.Stop()
	return nil
}

func (s *syncScheduler) HandleNotification(ctx context.Context, n models.Notification) bool {
	if s.subscriptionID == "" || n.SubscriptionID != s.subscriptionID {
		s.logger.Debug().Str("subscription_id", n.SubscriptionID).Msg("ignoring foreign notification")
		return false
	}
	if n.RecordType != "" && n.RecordType != models.NoteRecordType {
		return false
	}

	if _, err := s.book.MarkPendingDownload(ctx, n.RecordName); err != nil {
		s.logger.Warn().Err(err).Str("record_name", n.RecordName).Msg("failed to mark note pending download")
	}

	s.logSync("notification", s.SyncNow(ctx))
	return true
}

// SyncNow implements SyncScheduler. Passes may overlap; each one merges its
// own snapshot and ApplySync keeps edits made in between.
func (s *syncScheduler) SyncNow(ctx context.Context) error {
	if !s.book.SyncEnabled() {
		return ErrSyncDisabled
	}

	if status := s.engine.CheckAvailability(ctx); status != models.AccountStatusAvailable {
		err := fmt.Errorf("%w: account is %s", ErrNotAuthenticated, status)
		s.book.RecordPass(err)
		return err
	}

	snapshot := s.book.Notes()
	merged, err := s.engine.FullSync(ctx, snapshot)
	s.book.RecordPass(err)
	if err != nil {
		return err
	}

	return s.book.ApplySync(ctx, snapshot, merged)
}

func (s *syncScheduler) startLoop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loop != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(s.baseCtx)
	loop := &periodicLoop{cancel: cancel, done: make(chan struct{})}
	s.loop = loop

	go func() {
		defer close(loop.done)
		t := time.NewTicker(s.interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				s.logSync("periodic", s.SyncNow(loopCtx))
			}
		}
	}()
}

func (s *syncScheduler) stopLoop() {
	s.mu.Lock()
	loop := s.loop
	s.loop = nil
	s.mu.Unlock()

	if loop == nil {
		return
	}
	loop.cancel()
	<-loop.done
}

func (s *syncScheduler) cancelDebounce() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen++
}

func (s *syncScheduler) logSync(trigger string, err error) {
	switch {
	case err == nil:
		s.logger.Debug().Str("trigger", trigger).Msg("sync pass finished")
	case errors.Is(err, ErrSyncDisabled), errors.Is(err, ErrNotAuthenticated), errors.Is(err, context.Canceled):
		s.logger.Debug().Err(err).Str("trigger", trigger).Msg("sync pass skipped")
	default:
		s.logger.Warn().Err(err).Str("trigger", trigger).Msg("sync pass failed")
	}
}
