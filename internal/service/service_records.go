package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/store"
	"github.com/MKhiriev/go-six-notes/internal/utils"
	"github.com/MKhiriev/go-six-notes/models"
)

type recordService struct {
	records       store.RecordRepository
	subscriptions store.SubscriptionRepository
	notifier      Notifier
	tags          *utils.UUIDGenerator

	logger *logger.Logger
}

func NewRecordService(records store.RecordRepository, subscriptions store.SubscriptionRepository, notifier Notifier, logger *logger.Logger) RecordService {
	return &recordService{
		records:       records,
		subscriptions: subscriptions,
		notifier:      notifier,
		tags:          utils.NewUUIDGenerator(),
		logger:        logger,
	}
}

func (s *recordService) ListRecords(ctx context.Context, userID int64, cursor string, limit int) (models.RecordsPage, error) {
	return s.records.ListRecords(ctx, userID, cursor, limit)
}

func (s *recordService) GetRecord(ctx context.Context, userID int64, recordName string) (models.NoteRecord, error) {
	return s.records.GetRecord(ctx, userID, recordName)
}

// SaveRecord issues a new UUIDv7 tag for every successful write and notifies
// every subscription of the owner. Notification failures never fail the save.
func (s *recordService) SaveRecord(ctx context.Context, userID int64, record models.NoteRecord) (models.NoteRecord, error) {
	log := logger.FromContext(ctx)

	reason := models.NotificationReasonUpdated
	if record.ChangeTag == "" {
		reason = models.NotificationReasonCreated
	}

	saved, err := s.records.SaveRecord(ctx, userID, record, s.tags.Generate())
	if err != nil {
		var conflict *store.VersionConflictError
		if errors.As(err, &conflict) {
			log.Info().
				Str("record", record.RecordName).
				Str("base_tag", record.ChangeTag).
				Str("current_tag", conflict.Current.ChangeTag).
				Msg("change tag conflict")
			return models.NoteRecord{}, err
		}
		log.Err(err).Str("func", "recordService.SaveRecord").Str("record", record.RecordName).Msg("saving record failed")
		return models.NoteRecord{}, fmt.Errorf("saving record %s: %w", record.RecordName, err)
	}

	s.publish(ctx, userID, saved, reason)

	return saved, nil
}

func (s *recordService) Subscribe(ctx context.Context, userID int64, req models.SubscriptionRequest) error {
	if err := s.subscriptions.SaveSubscription(ctx, userID, req); err != nil {
		return fmt.Errorf("saving subscription: %w", err)
	}
	return nil
}

func (s *recordService) publish(ctx context.Context, userID int64, record models.NoteRecord, reason string) {
	if s.notifier == nil {
		return
	}

	log := logger.FromContext(ctx)

	subs, err := s.subscriptions.ListSubscriptions(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "recordService.publish").Int64("user_id", userID).Msg("listing subscriptions failed")
		return
	}

	for _, sub := range subs {
		if sub.RecordType != models.NoteRecordType {
			continue
		}
		s.notifier.Publish(userID, models.Notification{
			SubscriptionID: sub.SubscriptionID,
			RecordType:     models.NoteRecordType,
			RecordName:     record.RecordName,
			Reason:         reason,
			ChangeTag:      record.ChangeTag,
		})
	}
}
