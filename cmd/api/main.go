// Command api runs the user-directory HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/oncallhq/user-directory/docs"
	"github.com/oncallhq/user-directory/internal/api"
	"github.com/oncallhq/user-directory/internal/infrastructure/config"
	"github.com/oncallhq/user-directory/internal/infrastructure/crypto"
	mongostore "github.com/oncallhq/user-directory/internal/infrastructure/db/mongo"
	redisstore "github.com/oncallhq/user-directory/internal/infrastructure/db/redis"
	"github.com/oncallhq/user-directory/internal/infrastructure/seed"
	"github.com/oncallhq/user-directory/pkg/logger"
)

// @title        User Directory API
// @version      1.0
// @description  Session-authenticated user directory with an escalation-policy proxy.
// @BasePath     /api
// @securityDefinitions.apikey SessionAuth
// @in cookie
// @name directory_session
// @description HttpOnly session cookie
func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.Env == "development")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisstore.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongostore.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	if cfg.SeedUsers {
		seeder := seed.NewSeeder(userRepo, crypto.NewBcryptHasher(), log)
		if err := seeder.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("seeding failed")
		}
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
