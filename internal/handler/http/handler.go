package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/service"
)

// NotificationStreamer upgrades an authenticated request to a change
// notification stream.
type NotificationStreamer interface {
	ServeUser(w http.ResponseWriter, r *http.Request, userID int64)
}

// Options carries transport settings that are not services.
type Options struct {
	// HashKey enables the HashSHA256 body check on write routes.
	HashKey string

	// RequestTimeout bounds REST handlers. The notification stream is exempt.
	RequestTimeout time.Duration
}

type Handler struct {
	services      *service.Services
	notifications NotificationStreamer
	opts          Options

	logger *logger.Logger
}

func NewHandler(services *service.Services, notifications NotificationStreamer, opts Options, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:      services,
		notifications: notifications,
		opts:          opts,
		logger:        logger,
	}
}
