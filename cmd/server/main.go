package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/MKhiriev/fishtrack/internal/config"
	"github.com/MKhiriev/fishtrack/internal/handler"
	"github.com/MKhiriev/fishtrack/internal/logger"
	"github.com/MKhiriev/fishtrack/internal/server"
	"github.com/MKhiriev/fishtrack/internal/service"
	"github.com/MKhiriev/fishtrack/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// .env is optional; deployments configure via the environment
	_ = godotenv.Load()

	log := logger.NewLogger("fishtrack-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	photoStorage, err := store.NewPhotoFileStorage(cfg.Storage.Photos.UploadDir, cfg.Storage.Photos.MaxUploadSize, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating photo storage")
	}

	storages := store.Storages{
		UserRepository:   store.NewUserRepository(db, log),
		SyncRepository:   store.NewSyncRepository(db, log),
		PhotoFileStorage: photoStorage,
	}

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
