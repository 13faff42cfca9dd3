package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// RecordServiceName is the health service name reported for the record
// service. The empty name reports the server as a whole.
const RecordServiceName = "sixnotes.RecordService"

// Pinger reports whether the record storage answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler is the root gRPC transport handler.
//
// It exposes the standard gRPC health service. The record service status
// follows the storage: it is SERVING while the database answers pings and
// NOT_SERVING otherwise.
type Handler struct {
	health  *health.Server
	storage Pinger

	logger *logger.Logger
}

// NewHandler constructs a [Handler] reporting on the given storage. A nil
// storage leaves the record service permanently SERVING.
func NewHandler(storage Pinger, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := health.NewServer()
	h.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.SetServingStatus(RecordServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Handler{
		health:  h,
		storage: storage,
		logger:  logger,
	}
}

// Register attaches the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// CheckStorage pings the storage once and updates the record service status.
func (h *Handler) CheckStorage(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	if h.storage == nil {
		return healthpb.HealthCheckResponse_SERVING
	}

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Err(err).Str("func", "*Handler.CheckStorage").Msg("storage ping failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.health.SetServingStatus(RecordServiceName, status)

	return status
}

// WatchStorage re-checks the storage every interval until ctx is done.
func (h *Handler) WatchStorage(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		h.CheckStorage(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Shutdown flips every service to NOT_SERVING so that probes fail while the
// server drains.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
