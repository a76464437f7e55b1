package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/caarlos0/env/v6"
	_ "github.com/lib/pq"
	"github.com/partsflow/catalog-pipeline/cmd/catalog/config"
	"github.com/partsflow/catalog-pipeline/internal/extractor"
	"github.com/partsflow/catalog-pipeline/internal/fetcher"
	"github.com/partsflow/catalog-pipeline/internal/handler"
	"github.com/partsflow/catalog-pipeline/internal/importer"
	"github.com/partsflow/catalog-pipeline/internal/platform/models"
	"github.com/partsflow/catalog-pipeline/internal/platform/rabbitmq"
	"github.com/partsflow/catalog-pipeline/internal/platform/storage"
	"github.com/partsflow/catalog-pipeline/internal/refresher"
	"github.com/partsflow/catalog-pipeline/internal/resolver"
	"github.com/partsflow/catalog-pipeline/internal/staticcatalog"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	// UserAgent is user agent header value used when fetching product pages.
	UserAgent = "catalog-pipeline/0.0.1"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	// "catalog import [-dry-run] <file>" runs one import batch and exits
	if len(os.Args) > 1 && os.Args[1] == "import" {
		runImport(context.Background(), &logger, cfg, os.Args[2:])
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
	}

	// the static catalog is the last-resort data source, so a broken
	// snapshot is a deployment error
	catalog, err := staticcatalog.Load(cfg.StaticCatalogPath)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("path", cfg.StaticCatalogPath).
			Msg("can't load static catalog")
	}
	logger.Info().
		Int("entries", catalog.Len()).
		Msg("static catalog loaded")

	fetch := fetcher.NewFetcher(&http.Client{Timeout: cfg.HTTPTimeout}, UserAgent)
	extract := &extractor.Extractor{}
	store := storage.NewPostgres(pgDB)

	res := resolver.NewResolver(store, catalog, fetch, extract, &logger)

	ref := refresher.NewRefresher(
		store,
		catalog,
		fetch,
		extract,
		&logger,
		refresher.WithDelay(cfg.RefreshDelay),
	)

	han := handler.NewHandler(conn, res, ref, &logger)

	// start consuming and handling messages
	err = han.Start(ctx, cfg.RabbitMQ.Queue)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start consuming")
	}

	logger.Info().Msg("catalog pipeline up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	// wait for consumer to finish
	<-conn.Done()

	// close connections
	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := pgDB.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close Postgres connection")
		}
	}()

	go func() {
		defer wg.Done()
		if err := amqpConnection.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close RabbitMQ connection")
		}
	}()

	wg.Wait()

	logger.Info().Msg("graceful shutdown successful")
}

func runImport(ctx context.Context, logger *zerolog.Logger, cfg config.Config, args []string) {
	flags := flag.NewFlagSet("import", flag.ExitOnError)
	dryRun := flags.Bool("dry-run", false, "validate the file without writing anything")
	_ = flags.Parse(args)

	path := flags.Arg(0)
	if path == "" {
		logger.Fatal().Msg("usage: catalog import [-dry-run] <file>")
	}

	fileBytes, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't read import file")
	}

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
	}
	defer pgDB.Close()

	imp := importer.NewImporter(
		storage.NewPostgres(pgDB),
		logger,
		importer.WithParallelLimit(cfg.ImportParallelLimit),
	)

	var result models.ImportResult
	if *dryRun {
		result, err = imp.ValidateBatch(ctx, fileBytes, path)
	} else {
		result, err = imp.ImportBatch(ctx, fileBytes, path)
	}
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't run import")
	}

	for _, warning := range result.Warnings {
		logger.Warn().
			Int("row", warning.Row).
			Str("sku", warning.SKU).
			Msg(warning.Message)
	}
	for _, rowError := range result.Errors {
		logger.Error().
			Int("row", rowError.Row).
			Str("sku", rowError.SKU).
			Msg(rowError.Message)
	}

	logger.Info().
		Int("succeeded", result.SuccessCount).
		Int("failed", result.FailedCount).
		Bool("dryRun", *dryRun).
		Msg("import finished")

	if result.FailedCount > 0 {
		os.Exit(1)
	}
}
