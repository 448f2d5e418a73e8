package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/report-buddy/internal/adapter"
	"github.com/MKhiriev/report-buddy/internal/caselaw"
	"github.com/MKhiriev/report-buddy/internal/config"
	"github.com/MKhiriev/report-buddy/internal/handler"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/internal/server"
	"github.com/MKhiriev/report-buddy/internal/service"
	"github.com/MKhiriev/report-buddy/internal/store"
	"github.com/MKhiriev/report-buddy/internal/utils"
	"github.com/MKhiriev/report-buddy/internal/workers"
	"github.com/MKhiriev/report-buddy/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// startupTimeout bounds connecting to the database, running migrations and
// fetching identity keys.
const startupTimeout = 30 * time.Second

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger("report-buddy-server", cfg.App.Env)
	log.Debug().Str("env", cfg.App.Env).Str("http", cfg.Server.HTTPAddress).Str("grpc", cfg.Server.GRPCAddress).Msg("received configs")

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	llm, err := adapter.NewChatCompleter(ctx, cfg.LLM, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating language model client")
	}
	if closer, ok := llm.(io.Closer); ok {
		defer closer.Close()
	}

	var billing adapter.BillingProvider
	if cfg.Billing.SecretKey != "" {
		billing = adapter.NewStripeBilling(cfg.Billing)
	} else {
		log.Warn().Msg("billing is not configured; checkout and webhooks are disabled")
	}

	verifier, err := adapter.NewTokenVerifier(ctx, cfg.Identity)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token verifier")
	}

	dataset, err := caselaw.Default()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading case law dataset")
	}

	storages := store.NewStorages(db, log)

	services, err := service.NewServices(storages, service.Dependencies{
		LLM:     llm,
		Billing: billing,
		CaseLaw: dataset,
		IDs:     utils.NewUUIDGenerator(),
		Build:   models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
	}, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	limiters, sweepers, err := newLimiters(cfg.RateLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating rate limiters")
	}

	handlers, err := handler.NewHandlers(services, verifier, limiters, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bg := workers.NewWorkers(
		workers.NewLimiterSweeper(cfg.Workers.LimiterSweepInterval, log.GetChildLogger(), sweepers...),
	)

	srv, err := server.NewServer(handlers, cfg.Server, log, bg)
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
