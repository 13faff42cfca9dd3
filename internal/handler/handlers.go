package handler

import (
	"errors"

	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/handler/grpc"
	"github.com/MKhiriev/go-six-notes/internal/handler/http"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/service"
)

var errNoHandlersAreCreated = errors.New("no handlers are created: set an HTTP or a gRPC address")

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds the transports enabled in cfg. The HTTP handler serves
// the record API and hands notification streams to notifications; the gRPC
// handler reports health, following storage.
func NewHandlers(services *service.Services, notifications http.NotificationStreamer, storage grpc.Pinger, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, notifications, http.Options{
			HashKey:        cfg.App.HashKey,
			RequestTimeout: cfg.Server.RequestTimeout,
		}, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(storage, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
