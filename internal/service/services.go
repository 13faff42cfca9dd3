package service

import (
	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/crypto"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/store"
)

// Services bundles the server-side services handed to the transport layer.
type Services struct {
	AuthService    AuthService
	RecordService  RecordService
	AppInfoService AppInfoService
}

func NewServices(repos *store.Repositories, notifier Notifier, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	records := NewRecordValidationService(cfg.App.MaxContentBytes).
		Wrap(NewRecordService(repos.RecordRepository, repos.SubscriptionRepository, notifier, logger))

	return &Services{
		AuthService:    NewAuthService(repos.UserRepository, crypto.NewPasswordHasher(), cfg.App, logger),
		RecordService:  records,
		AppInfoService: appInfo,
	}, nil
}
