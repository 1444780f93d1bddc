package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qrkeeper/internal/app/server/api"
	"qrkeeper/internal/app/server/config"
	"qrkeeper/internal/infrastructure/blob"
	"qrkeeper/internal/infrastructure/cache"
	"qrkeeper/internal/infrastructure/metrics"
	"qrkeeper/internal/infrastructure/storage/postgres"
	"qrkeeper/internal/utils/logger"

	"github.com/bwmarrin/snowflake"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env, conf.Logger.LogLevel)
	log.Info("starting qrkeeper server", "env", conf.Env, "address", conf.Server.RunAddress)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := postgres.New(ctx, conf)
	if err != nil {
		log.Error("failed to init storage", logger.Err(err))
		os.Exit(1)
	}
	defer storage.Close()

	blobs, err := blob.New(conf.Blob, log)
	if err != nil {
		log.Error("failed to init blob storage", logger.Err(err))
		os.Exit(1)
	}
	if err := blobs.EnsureBucket(ctx); err != nil {
		log.Error("failed to prepare bucket", logger.Err(err))
		os.Exit(1)
	}

	redisClient, err := cache.NewClient(ctx, conf.Redis)
	if err != nil {
		log.Error("failed to connect redis", logger.Err(err))
		os.Exit(1)
	}
	if redisClient == nil {
		log.Warn("REDIS_ADDR is empty, destination cache disabled")
	} else {
		defer redisClient.Close()
	}

	node, err := snowflake.NewNode(conf.NodeID)
	if err != nil {
		log.Error("failed to init id generator", logger.Err(err))
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := api.New(api.Deps{
		Config:   conf,
		Storage:  storage,
		Blobs:    blobs,
		Cache:    cache.NewDestinationCache(redisClient, conf.Redis.TTL),
		Metrics:  metrics.New(registry, conf.Env),
		Gatherer: registry,
		Node:     node,
	}, log)

	srv := &http.Server{
		Addr:              conf.Server.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", logger.Err(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", logger.Err(err))
	}
}
