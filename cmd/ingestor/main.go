package main

import (
	"context"
	"database/sql"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"trip_budget/internal/adapters/catalogapi"
	"trip_budget/internal/adapters/observability"
	"trip_budget/internal/app"
	"trip_budget/internal/shared"
	mysqlrepo "trip_budget/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel).
		With().Str("run_id", uuid.NewString()).Logger()

	log.Info().
		Str("base", cfg.CatalogBase).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := catalogapi.New(cfg.CatalogBase, cfg.CatalogKey, cfg.CatalogRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog client (is CATALOG_API_KEY set?)")
	}
	ids, err := client.ListDestinationIDs(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listing upstream destinations failed")
	}
	log.Info().Int("destinations", len(ids)).Msg("upstream listing ok")

	ing := app.NewIngestionService(client, repo)
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var failed atomic.Int64
	start := time.Now()

	for _, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("ingestion interrupted")
			break
		}

		wg.Add(1)
		go func(destID int64) {
			defer wg.Done()
			defer sem.Release(1)

			if err := ing.IngestDestination(ctx, destID); err != nil {
				failed.Add(1)
				log.Warn().Int64("id", destID).Err(err).Msg("ingest failed")
				return
			}
			log.Debug().Int64("id", destID).Msg("ingest ok")
		}(id)
	}

	wg.Wait()
	log.Info().
		Int("total", len(ids)).
		Int64("failed", failed.Load()).
		Dur("duration", time.Since(start)).
		Msg("ingestion completed")
}
