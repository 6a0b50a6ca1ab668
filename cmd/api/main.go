package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sthaniya/sthaniya-api/internal/api"
	"github.com/sthaniya/sthaniya-api/internal/core/ports"
	"github.com/sthaniya/sthaniya-api/internal/infrastructure/cache/memory"
	"github.com/sthaniya/sthaniya-api/internal/infrastructure/config"
	mongodb "github.com/sthaniya/sthaniya-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sthaniya/sthaniya-api/internal/infrastructure/db/redis"
	"github.com/sthaniya/sthaniya-api/internal/infrastructure/identity"
	"github.com/sthaniya/sthaniya-api/internal/infrastructure/mail"
	"github.com/sthaniya/sthaniya-api/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const shutdownTimeout = 15 * time.Second

// @title           Sthaniya API
// @version         1.0
// @description     Community food-story sharing platform: accounts, stories, likes, comments and anonymous story uploads.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	var (
		codes ports.CodeStore
		rdb   *redis.Client
	)
	switch cfg.CodeStore {
	case "redis":
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		codes = redisdb.NewCodeStore(rdb)
	default:
		store := memory.NewCodeStore(0, log)
		store.StartSweeper(ctx)
		codes = store
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("upload directory creation failed")
	}

	mailer := mail.NewMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	verifier := identity.NewGoogleVerifier(cfg.GoogleClientID)

	e := api.NewRouter(cfg, api.Deps{
		DB:       db,
		Redis:    rdb,
		Codes:    codes,
		Mailer:   mailer,
		Identity: verifier,
		Logger:   log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewStoryRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewUploadRepository(db).EnsureIndexes(ctx)
}
