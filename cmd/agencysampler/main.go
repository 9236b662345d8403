package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	impressoadapter "github.com/ericfisherdev/agencysampler/internal/adapter/driven/impresso"
	"github.com/ericfisherdev/agencysampler/internal/adapter/driven/jsonfile"
	sqliteadapter "github.com/ericfisherdev/agencysampler/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/agencysampler/internal/application"
	"github.com/ericfisherdev/agencysampler/internal/config"
	"github.com/ericfisherdev/agencysampler/internal/domain/model"
	"github.com/ericfisherdev/agencysampler/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing credentials).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 2. Route logs to stderr and the append-only progress log.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", cfg.LogFile, err)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(io.MultiWriter(os.Stderr, logFile), nil)))

	slog.Info("config loaded",
		"api_base_url", cfg.APIBaseURL,
		"agency_file", cfg.AgencyFile,
		"output_file", cfg.OutputFile,
		"db_path", cfg.DBPath,
		"page_limit", cfg.PageLimit,
		"max_hits", cfg.MaxHits,
		"request_delay", cfg.RequestDelay,
		"include_empty", cfg.IncludeEmpty,
		"secondary_credentials", cfg.HasSecondaryCredentials(),
	)

	// 3. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Open the run journal database and apply migrations.
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if err := db.Migrate(); err != nil {
		return err
	}

	// 5. Wire adapters.
	journal := sqliteadapter.NewRunRepo(db)
	resultStore := jsonfile.NewResultStore(cfg.OutputFile)

	primary := model.Credentials{Email: cfg.FirstEmail, Password: cfg.FirstPassword}
	secondary := model.Credentials{Email: cfg.SecondEmail, Password: cfg.SecondPassword}
	client := impressoadapter.NewClient(cfg.APIBaseURL, primary, secondary, cfg.MaxRetries)

	// 6. Acquire bearer tokens. Authentication failure is fatal: without a
	// token no query is possible.
	pair, err := client.Authenticate(ctx)
	if err != nil {
		return err
	}
	slog.Info("authenticated", "secondary_token", pair.Secondary != "")

	// 7. Run the sampler to completion.
	sampler := application.NewSamplerService(client, resultStore, journal, application.SamplerOptions{
		AgencyFile: cfg.AgencyFile,
		Search: driven.SearchOptions{
			PageLimit: cfg.PageLimit,
			MaxHits:   cfg.MaxHits,
			DateFrom:  cfg.StartDate,
			DateTo:    cfg.EndDate,
		},
		RequestDelay: cfg.RequestDelay,
		IncludeEmpty: cfg.IncludeEmpty,
	})

	sampleRun, err := sampler.Run(ctx)
	if err != nil {
		return err
	}

	// Partial success is still success: failed agencies were logged and
	// journaled, the rest were written out.
	slog.Info("done", "run_id", sampleRun.ID, "output_file", cfg.OutputFile)
	return nil
}
