package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/consultia/expense-system/internal/api"
	"github.com/consultia/expense-system/internal/infrastructure/db/mongo"
	"github.com/consultia/expense-system/internal/infrastructure/db/redis"
	"github.com/consultia/expense-system/internal/infrastructure/storage"
	"github.com/consultia/expense-system/internal/pkg/config"
	"github.com/consultia/expense-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	lg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		lg.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			lg.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		lg.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	files, err := storage.NewDiskStore(cfg.Storage.Dir, cfg.Storage.BaseURL, []byte(cfg.Storage.SignSecret))
	if err != nil {
		lg.Fatal().Err(err).Msg("file storage init failed")
	}

	identity := mongo.NewIdentityProvider(db)
	if err := identity.EnsureIndexes(ctx); err != nil {
		lg.Fatal().Err(err).Msg("index creation failed")
	}

	e := api.NewRouter(db, rdb, files, cfg, lg)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		lg.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil {
			lg.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("graceful shutdown failed")
	}
}
