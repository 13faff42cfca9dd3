package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-six-notes/internal/config"
	"github.com/MKhiriev/go-six-notes/internal/handler"
	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/internal/notify"
	"github.com/MKhiriev/go-six-notes/internal/server"
	"github.com/MKhiriev/go-six-notes/internal/service"
	"github.com/MKhiriev/go-six-notes/internal/store"
	"github.com/MKhiriev/go-six-notes/internal/utils"
	"github.com/MKhiriev/go-six-notes/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	log := logger.NewLogger("six-notes-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Bool("hash_enabled", cfg.App.HashKey != "").
		Msg("received configs")

	if cfg.App.HashKey != "" {
		utils.InitHasherPool(cfg.App.HashKey)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	repos, err := store.NewRepositories(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer repos.Close()

	hub := notify.NewHub(log)

	services, err := service.NewServices(repos, hub, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, hub, repos, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log, hub.Close)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.Run(ctx); err != nil {
		log.Err(err).Msg("server failed")
	}
}

func printBuildInfo() {
	fmt.Println(models.BuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit})
}
