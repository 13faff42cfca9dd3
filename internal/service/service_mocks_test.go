// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-six-notes/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn      func(ctx context.Context, user models.User) (models.User, error)
	findByLoginFn func(ctx context.Context, login string) (models.User, error)
	findByIDFn    func(ctx context.Context, userID int64) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.UserID = 1
	return user, nil
}

func (m *mockUserRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	if m.findByLoginFn != nil {
		return m.findByLoginFn(ctx, login)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

// ─────────────────────────────────────────────
// Mock: store.RecordRepository
// ─────────────────────────────────────────────

type mockRecordRepository struct {
	listFn func(ctx context.Context, userID int64, cursor string, limit int) (models.RecordsPage, error)
	getFn  func(ctx context.Context, userID int64, name string) (models.NoteRecord, error)
	saveFn func(ctx context.Context, userID int64, record models.NoteRecord, newTag string) (models.NoteRecord, error)
}

func (m *mockRecordRepository) ListRecords(ctx context.Context, userID int64, cursor string, limit int) (models.RecordsPage, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, cursor, limit)
	}
	return models.RecordsPage{}, nil
}

func (m *mockRecordRepository) GetRecord(ctx context.Context, userID int64, name string) (models.NoteRecord, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, name)
	}
	return models.NoteRecord{RecordName: name}, nil
}

func (m *mockRecordRepository) SaveRecord(ctx context.Context, userID int64, record models.NoteRecord, newTag string) (models.NoteRecord, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, userID, record, newTag)
	}
	record.ChangeTag = newTag
	return record, nil
}

// ─────────────────────────────────────────────
// Mock: store.SubscriptionRepository
// ─────────────────────────────────────────────

type mockSubscriptionRepository struct {
	saveFn func(ctx context.Context, userID int64, sub models.SubscriptionRequest) error
	listFn func(ctx context.Context, userID int64) ([]models.SubscriptionRequest, error)
}

func (m *mockSubscriptionRepository) SaveSubscription(ctx context.Context, userID int64, sub models.SubscriptionRequest) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, userID, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) ListSubscriptions(ctx context.Context, userID int64) ([]models.SubscriptionRequest, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: Notifier
// ─────────────────────────────────────────────

type published struct {
	userID int64
	n      models.Notification
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []published
}

func (r *recordingNotifier) Publish(userID int64, n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, published{userID: userID, n: n})
}

func (r *recordingNotifier) all() []published {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]published(nil), r.sent...)
}

// ─────────────────────────────────────────────
// Stub: crypto.PasswordHasher
// ─────────────────────────────────────────────

// stubHasher "hashes" by prefixing, which keeps auth tests fast and readable.
type stubHasher struct {
	hashErr   error
	verifyErr error
}

func (s stubHasher) Hash(password string) (string, error) {
	if s.hashErr != nil {
		return "", s.hashErr
	}
	return "hashed:" + password, nil
}

func (s stubHasher) Verify(password, encoded string) (bool, error) {
	if s.verifyErr != nil {
		return false, s.verifyErr
	}
	return encoded == "hashed:"+password, nil
}
