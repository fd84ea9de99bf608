// Command server runs the law record ingestion gateway.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lexgate/internal/blobstore"
	"lexgate/internal/law/batch"
	"lexgate/internal/law/cache"
	lawhandler "lexgate/internal/law/handler"
	"lexgate/internal/law/linker"
	lawmetrics "lexgate/internal/law/metrics"
	"lexgate/internal/law/resolver"
	"lexgate/internal/law/upsert"
	"lexgate/internal/platform/audit"
	"lexgate/internal/platform/config"
	"lexgate/internal/platform/credentials"
	"lexgate/internal/platform/httpserver"
	"lexgate/internal/platform/logger"
	"lexgate/internal/platform/metrics"
	"lexgate/internal/platform/middleware"
	platformredis "lexgate/internal/platform/redis"
	"lexgate/internal/recordstore"
	transporthttp "lexgate/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("lookup cache enabled")
	}
	lookupCache := cache.New(redisClient, config.LookupCacheTTL, log)

	var auditStore audit.Store
	if cfg.AuditDSN != "" {
		pg, err := audit.OpenPostgres(ctx, cfg.AuditDSN)
		if err != nil {
			log.Error("audit store connection failed", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		auditStore = pg
		log.Info("audit trail persisted to postgres")
	} else {
		auditStore = audit.NewInMemoryStore()
	}
	publisher := audit.NewPublisher(0, log)
	worker := audit.NewWorker(auditStore, publisher.Inbox(), log)
	go func() {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	store := recordstore.NewClient(
		cfg.RecordStoreURL,
		credentials.NewStatic(cfg.RecordStoreToken),
		cfg.RecordStoreTimeout,
		log,
	)
	transfer := blobstore.NewHTTPTransferrer(cfg.BlobTimeout)

	res := resolver.New(store, log,
		resolver.WithWindow(cfg.DebounceWindow),
		resolver.WithCache(lookupCache),
	)
	defer res.Stop()

	sessions := upsert.NewSessions(cfg.SessionTTL)
	orchestrator := upsert.New(store, transfer, sessions, lookupCache, publisher, log)
	link := linker.New(store, publisher, log)
	importer := batch.New(orchestrator, link, publisher, log)

	handler := lawhandler.New(res, orchestrator, link, importer, log, lawmetrics.New())

	router := transporthttp.NewRouter(transporthttp.Deps{
		LawHandler:     handler,
		AuthValidator:  middleware.NewHMACValidator(cfg.JWTSigningKey),
		Logger:         log,
		Metrics:        metrics.New(),
		RequestTimeout: cfg.BlobTimeout + cfg.RecordStoreTimeout,
		Ready: func() error {
			if redisClient == nil {
				return nil
			}
			checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Health(checkCtx)
		},
	})

	srv := httpserver.New(cfg.Addr, router)
	go func() {
		log.Info("starting lexgate", "addr", cfg.Addr, "record_store", cfg.RecordStoreURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
