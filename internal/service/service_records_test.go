package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/store"
	"github.com/MKhiriev/go-six-notes/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serverRecord(name, content, tag string) models.NoteRecord {
	return models.NoteRecord{
		RecordName:   name,
		Content:      content,
		LastModified: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ChangeTag:    tag,
	}
}

func noteSubs(ids ...string) func(ctx context.Context, userID int64) ([]models.SubscriptionRequest, error) {
	return func(ctx context.Context, userID int64) ([]models.SubscriptionRequest, error) {
		out := make([]models.SubscriptionRequest, 0, len(ids))
		for _, id := range ids {
			out = append(out, models.SubscriptionRequest{SubscriptionID: id, RecordType: models.NoteRecordType})
		}
		return out, nil
	}
}

func TestRecordService_SaveIssuesFreshTag(t *testing.T) {
	var gotTag string
	repo := &mockRecordRepository{saveFn: func(ctx context.Context, userID int64, r models.NoteRecord, newTag string) (models.NoteRecord, error) {
		gotTag = newTag
		r.ChangeTag = newTag
		return r, nil
	}}
	svc := NewRecordService(repo, &mockSubscriptionRepository{}, nil, logger.Nop())

	saved, err := svc.SaveRecord(context.Background(), 1, serverRecord("note_0", "a", ""))
	require.NoError(t, err)
	require.NotEmpty(t, gotTag)
	assert.Equal(t, gotTag, saved.ChangeTag)

	again, err := svc.SaveRecord(context.Background(), 1, serverRecord("note_0", "b", saved.ChangeTag))
	require.NoError(t, err)
	assert.NotEqual(t, saved.ChangeTag, again.ChangeTag, "every write must get a new tag")
}

func TestRecordService_SavePublishesPerSubscription(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewRecordService(&mockRecordRepository{}, &mockSubscriptionRepository{listFn: noteSubs("phone", "laptop")}, notifier, logger.Nop())

	saved, err := svc.SaveRecord(context.Background(), 5, serverRecord("note_3", "x", ""))
	require.NoError(t, err)

	sent := notifier.all()
	require.Len(t, sent, 2)
	for i, sub := range []string{"phone", "laptop"} {
		assert.Equal(t, int64(5), sent[i].userID)
		assert.Equal(t, models.Notification{
			SubscriptionID: sub,
			RecordType:     models.NoteRecordType,
			RecordName:     "note_3",
			Reason:         models.NotificationReasonCreated,
			ChangeTag:      saved.ChangeTag,
		}, sent[i].n)
	}
}

func TestRecordService_UpdateReason(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewRecordService(&mockRecordRepository{}, &mockSubscriptionRepository{listFn: noteSubs("s")}, notifier, logger.Nop())

	_, err := svc.SaveRecord(context.Background(), 5, serverRecord("note_3", "x", "old"))
	require.NoError(t, err)

	require.Len(t, notifier.all(), 1)
	assert.Equal(t, models.NotificationReasonUpdated, notifier.all()[0].n.Reason)
}

func TestRecordService_ConflictDoesNotNotify(t *testing.T) {
	current := serverRecord("note_1", "theirs", "t2")
	repo := &mockRecordRepository{saveFn: func(ctx context.Context, userID int64, r models.NoteRecord, newTag string) (models.NoteRecord, error) {
		return models.NoteRecord{}, &store.VersionConflictError{Current: current}
	}}
	notifier := &recordingNotifier{}
	svc := NewRecordService(repo, &mockSubscriptionRepository{listFn: noteSubs("s")}, notifier, logger.Nop())

	_, err := svc.SaveRecord(context.Background(), 1, serverRecord("note_1", "mine", "t1"))

	var conflict *store.VersionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, current, conflict.Current)
	assert.Empty(t, notifier.all())
}

func TestRecordService_SubscriptionListFailureKeepsSave(t *testing.T) {
	subs := &mockSubscriptionRepository{listFn: func(ctx context.Context, userID int64) ([]models.SubscriptionRequest, error) {
		return nil, errors.New("db gone")
	}}
	notifier := &recordingNotifier{}
	svc := NewRecordService(&mockRecordRepository{}, subs, notifier, logger.Nop())

	_, err := svc.SaveRecord(context.Background(), 1, serverRecord("note_1", "x", ""))

	assert.NoError(t, err)
	assert.Empty(t, notifier.all())
}

func TestRecordService_SaveStorageError(t *testing.T) {
	repo := &mockRecordRepository{saveFn: func(ctx context.Context, userID int64, r models.NoteRecord, newTag string) (models.NoteRecord, error) {
		return models.NoteRecord{}, store.ErrStoreUnavailable
	}}
	svc := NewRecordService(repo, &mockSubscriptionRepository{}, nil, logger.Nop())

	_, err := svc.SaveRecord(context.Background(), 1, serverRecord("note_1", "x", ""))
	assert.ErrorIs(t, err, store.ErrStoreUnavailable)
}

func TestRecordService_Subscribe(t *testing.T) {
	var saved models.SubscriptionRequest
	subs := &mockSubscriptionRepository{saveFn: func(ctx context.Context, userID int64, sub models.SubscriptionRequest) error {
		saved = sub
		return nil
	}}
	svc := NewRecordService(&mockRecordRepository{}, subs, nil, logger.Nop())

	req := models.SubscriptionRequest{SubscriptionID: "s1", RecordType: models.NoteRecordType}
	require.NoError(t, svc.Subscribe(context.Background(), 1, req))
	assert.Equal(t, req, saved)
}

// ─────────────────────────────────────────────
// RecordValidationService
// ─────────────────────────────────────────────

func newValidatedRecordService(repo *mockRecordRepository) RecordService {
	return NewRecordValidationService(16).Wrap(NewRecordService(repo, &mockSubscriptionRepository{}, nil, logger.Nop()))
}

func TestRecordValidation_Save(t *testing.T) {
	calls := 0
	repo := &mockRecordRepository{saveFn: func(ctx context.Context, userID int64, r models.NoteRecord, newTag string) (models.NoteRecord, error) {
		calls++
		r.ChangeTag = newTag
		return r, nil
	}}
	svc := newValidatedRecordService(repo)
	ctx := context.Background()

	_, err := svc.SaveRecord(ctx, 1, serverRecord("note_6", "x", ""))
	assert.ErrorIs(t, err, ErrInvalidRecordName)

	_, err = svc.SaveRecord(ctx, 1, serverRecord("note_0", strings.Repeat("x", 17), ""))
	assert.ErrorIs(t, err, ErrContentTooLarge)

	bad := serverRecord("note_0", "x", "")
	bad.CursorPosition = -4
	_, err = svc.SaveRecord(ctx, 1, bad)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	assert.Zero(t, calls, "invalid records must not reach storage")

	_, err = svc.SaveRecord(ctx, 1, serverRecord("note_5", "fine", ""))
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRecordValidation_GetAndList(t *testing.T) {
	svc := newValidatedRecordService(&mockRecordRepository{})
	ctx := context.Background()

	_, err := svc.GetRecord(ctx, 1, "../etc")
	assert.ErrorIs(t, err, ErrInvalidRecordName)

	got, err := svc.GetRecord(ctx, 1, "note_2")
	require.NoError(t, err)
	assert.Equal(t, "note_2", got.RecordName)

	_, err = svc.ListRecords(ctx, 1, "", 0)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRecordValidation_Subscribe(t *testing.T) {
	svc := newValidatedRecordService(&mockRecordRepository{})

	err := svc.Subscribe(context.Background(), 1, models.SubscriptionRequest{SubscriptionID: "s", RecordType: "Other"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
