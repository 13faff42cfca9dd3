package service

import (
	"context"

	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/models"
)

type appInfoService struct {
	info models.ServerInfo

	logger *logger.Logger
}

// NewAppInfoService describes the running server: its version and the
// record limits clients must respect.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		info: models.ServerInfo{
			Version:         cfg.Version,
			RecordType:      models.NoteRecordType,
			Slots:           models.NoteSlots,
			MaxContentBytes: cfg.MaxContentBytes,
		},
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.info.Version
}

func (s *appInfoService) GetServerInfo(ctx context.Context) models.ServerInfo {
	return s.info
}
