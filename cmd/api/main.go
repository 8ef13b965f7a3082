package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "trip_budget/internal/adapters/http_server"
	"trip_budget/internal/adapters/memcache"
	"trip_budget/internal/adapters/observability"
	redisad "trip_budget/internal/adapters/redis"
	"trip_budget/internal/app"
	"trip_budget/internal/budget"
	"trip_budget/internal/domain"
	"trip_budget/internal/shared"
	"trip_budget/internal/storage/jsonfile"
	mysqlrepo "trip_budget/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, observability.MetricsHandler(reg))

	// catalog source
	var reader domain.CatalogReader
	if cfg.CatalogFile != "" {
		reader = jsonfile.New(cfg.CatalogFile)
		log.Info().Str("file", cfg.CatalogFile).Msg("reading catalog from file")
	} else {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		reader = mysqlrepo.New(db)
	}

	catalog := app.NewCatalogService(reader, budget.Options{AllowReversedDates: cfg.AllowReversedDates})
	models, err := catalog.Initialize(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("initial catalog load failed")
	}

	q := app.NewQueryService(models, newCache(ctx, cfg), cfg.CacheTTL)

	if cfg.ReloadInterval > 0 {
		go reloadLoop(ctx, catalog, cfg.ReloadInterval)
	}

	// http
	srv := server.New(server.Options{
		Timeout:        cfg.RequestTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Catalog: catalog})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

// newCache picks the prediction cache. A Redis that cannot be reached at
// startup degrades to no caching rather than failing the API.
func newCache(ctx context.Context, cfg shared.Config) domain.Cache {
	switch cfg.CacheBackend {
	case "none", "off":
		log.Info().Msg("prediction cache disabled")
		return nil
	case "memory":
		log.Info().Msg("using in-process prediction cache")
		return memcache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	default:
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; caching disabled")
			_ = rc.Close()
			return nil
		}
		return rc
	}
}

func reloadLoop(ctx context.Context, catalog *app.CatalogService, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := catalog.Reload(ctx); err != nil {
				log.Warn().Err(err).Msg("scheduled reload failed; keeping current model")
			}
		}
	}
}
