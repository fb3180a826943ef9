package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-api-dispatch/internal/config"
	"github.com/MKhiriev/go-api-dispatch/internal/dispatcher"
	"github.com/MKhiriev/go-api-dispatch/internal/endpoints"
	"github.com/MKhiriev/go-api-dispatch/internal/handler"
	"github.com/MKhiriev/go-api-dispatch/internal/logger"
	"github.com/MKhiriev/go-api-dispatch/internal/metrics"
	"github.com/MKhiriev/go-api-dispatch/internal/server"
	"github.com/MKhiriev/go-api-dispatch/internal/service"
	"github.com/MKhiriev/go-api-dispatch/internal/store"
	"github.com/MKhiriev/go-api-dispatch/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	log := logger.NewLogger("go-api-dispatch-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().Str("driver", cfg.Storage.DB.Driver).
		Str("http", cfg.Server.HTTPAddress).
		Str("grpc", cfg.Server.GRPCAddress).
		Str("broker", cfg.Broker.URL).
		Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error migrating database")
	}

	services, err := service.NewServices(store.NewStorages(db, log), *cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = bootstrapAdmin(ctx, services.AuthService, cfg.App, log); err != nil {
		log.Fatal().Err(err).Msg("error ensuring admin account")
	}

	collector := metrics.NewCollector()

	opts := []dispatcher.Option{dispatcher.WithObserver(collector)}
	if cfg.App.NotImplemented {
		opts = append(opts, dispatcher.WithNotImplemented())
	}

	d, err := dispatcher.New(endpoints.New(services, log), services.AuthService, log, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating dispatcher")
	}

	handlers, err := handler.NewHandlers(d, collector, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// bootstrapAdmin ensures the configured administrator exists so that the
// admin-only endpoints are usable on a fresh database.
func bootstrapAdmin(ctx context.Context, auth service.AuthService, cfg config.App, log *logger.Logger) error {
	if cfg.AdminLogin == "" {
		log.Debug().Msg("no admin account configured")
		return nil
	}

	admin, err := auth.EnsureAdmin(ctx, cfg.AdminLogin, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("ensure admin %q: %w", cfg.AdminLogin, err)
	}

	log.Info().Int64("id", admin.UserID).Str("login", admin.Login).Msg("admin account ready")
	return nil
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.BuildVersion)
	fmt.Printf("Build date: %s\n", build.BuildDate)
	fmt.Printf("Build commit: %s\n", build.BuildCommit)
}
