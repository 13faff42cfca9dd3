package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/MKhiriev/go-six-notes/internal/config"
	myGRPC "github.com/MKhiriev/go-six-notes/internal/handler/grpc"
	"github.com/MKhiriev/go-six-notes/internal/logger"

	"google.golang.org/grpc"
)

const storageCheckInterval = 15 * time.Second

type grpcServer struct {
	handler  *myGRPC.Handler
	server   *grpc.Server
	listener net.Listener

	// stops the storage watcher
	cancel context.CancelFunc
	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	lis, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("gRPC listen on %s: %w", cfg.GRPCAddress, err)
	}

	srv := grpc.NewServer()
	handler.Register(srv)

	ctx, cancel := context.WithCancel(context.Background())
	go handler.WatchStorage(ctx, storageCheckInterval)

	return &grpcServer{
		handler:  handler,
		server:   srv,
		listener: lis,
		cancel:   cancel,
		logger:   logger,
	}, nil
}

func (g *grpcServer) name() string { return "grpc" }

func (g *grpcServer) serve() error {
	g.logger.Info().Str("address", g.listener.Addr().String()).Msg("gRPC server listening")
	if err := g.server.Serve(g.listener); err != nil {
		return fmt.Errorf("grpc server: %w", err)
	}
	return nil
}

// shutdown reports NOT_SERVING first so health clients see the drain.
func (g *grpcServer) shutdown() {
	g.cancel()
	g.handler.Shutdown()
	g.server.GracefulStop()
}
