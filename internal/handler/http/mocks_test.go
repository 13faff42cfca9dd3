package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-six-notes/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn     func(ctx context.Context, user models.User) (models.User, error)
	loginFn            func(ctx context.Context, user models.User) (models.User, error)
	createTokenFn      func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn       func(ctx context.Context, tokenString string) (models.Token, error)
	accountStatusFn    func(ctx context.Context, tokenString string) models.AccountStatus
	checkUserAllowedFn func(ctx context.Context, userID int64) error
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) AccountStatus(ctx context.Context, tokenString string) models.AccountStatus {
	if m.accountStatusFn == nil {
		return models.AccountStatusUnknown
	}
	return m.accountStatusFn(ctx, tokenString)
}

func (m *mockAuthService) CheckUserAllowed(ctx context.Context, userID int64) error {
	if m.checkUserAllowedFn == nil {
		return nil
	}
	return m.checkUserAllowedFn(ctx, userID)
}

// ─────────────────────────────────────────────
// Mock RecordService
// ─────────────────────────────────────────────

type mockRecordService struct {
	listFn      func(ctx context.Context, userID int64, cursor string, limit int) (models.RecordsPage, error)
	getFn       func(ctx context.Context, userID int64, name string) (models.NoteRecord, error)
	saveFn      func(ctx context.Context, userID int64, record models.NoteRecord) (models.NoteRecord, error)
	subscribeFn func(ctx context.Context, userID int64, req models.SubscriptionRequest) error
}

func (m *mockRecordService) ListRecords(ctx context.Context, userID int64, cursor string, limit int) (models.RecordsPage, error) {
	return m.listFn(ctx, userID, cursor, limit)
}

func (m *mockRecordService) GetRecord(ctx context.Context, userID int64, name string) (models.NoteRecord, error) {
	return m.getFn(ctx, userID, name)
}

func (m *mockRecordService) SaveRecord(ctx context.Context, userID int64, record models.NoteRecord) (models.NoteRecord, error) {
	return m.saveFn(ctx, userID, record)
}

func (m *mockRecordService) Subscribe(ctx context.Context, userID int64, req models.SubscriptionRequest) error {
	return m.subscribeFn(ctx, userID, req)
}

// ─────────────────────────────────────────────
// Stub NotificationStreamer
// ─────────────────────────────────────────────

type stubStreamer struct {
	userID int64
	called bool
}

func (s *stubStreamer) ServeUser(w http.ResponseWriter, r *http.Request, userID int64) {
	s.called = true
	s.userID = userID
	w.WriteHeader(http.StatusSwitchingProtocols)
}

// ─────────────────────────────────────────────
// Mock AppInfoService
// ─────────────────────────────────────────────

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) GetServerInfo(_ context.Context) models.ServerInfo {
	return models.ServerInfo{
		Version:         m.version,
		RecordType:      models.NoteRecordType,
		Slots:           models.NoteSlots,
		MaxContentBytes: 1024,
	}
}
