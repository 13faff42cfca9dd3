package server

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/handler"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"golang.org/x/sync/errgroup"
)

var errNoServersAreCreated = errors.New("no servers are created")

// transport is one listener run by [Server].
type transport interface {
	name() string
	// serve blocks until shutdown is called or the listener fails.
	serve() error
	shutdown()
}

// Server runs the HTTP API and the gRPC health endpoint side by side.
type Server struct {
	transports []transport
	onStop     []func()
	logger     *logger.Logger
}

// NewServer creates a transport for every configured address. onStop hooks
// run once, before the transports are shut down.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger, onStop ...func()) (*Server, error) {
	s := &Server{onStop: onStop, logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		s.transports = append(s.transports, newHTTPServer(handlers.HTTP.Init(), cfg, logger))
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			return nil, err
		}
		s.transports = append(s.transports, grpcSrv)
	}

	if len(s.transports) == 0 {
		return nil, errNoServersAreCreated
	}
	return s, nil
}

// Run serves until ctx is cancelled or one transport fails, then stops all
// of them. A failure is returned; a cancelled ctx is a clean stop.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, t := range s.transports {
		g.Go(func() error {
			s.logger.Info().Str("transport", t.name()).Msg("launching")
			return t.serve()
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.stop()
		return nil
	})

	err := g.Wait()
	s.logger.Info().Msg("server stopped")
	return err
}

func (s *Server) stop() {
	for _, fn := range s.onStop {
		fn()
	}
	for _, t := range s.transports {
		t.shutdown()
	}
}
