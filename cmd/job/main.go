// The daily quotes job: one delivery run per invocation, triggered by an
// external scheduler. Takes no arguments or flags; all configuration comes
// from config.yaml, .env, and environment variables. The process always
// exits zero — every failure is logged and the admin summary is still sent.
package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/mindfuel/daily-quotes/internal/config"
	"github.com/mindfuel/daily-quotes/internal/mailer"
	"github.com/mindfuel/daily-quotes/internal/pkg/distlock"
	"github.com/mindfuel/daily-quotes/internal/pkg/logger"
	"github.com/mindfuel/daily-quotes/internal/quotes"
	"github.com/mindfuel/daily-quotes/internal/repository/postgres"
	"github.com/mindfuel/daily-quotes/internal/service/delivery"
)

const runLockKey = "daily-quotes-run"

// runLockTTL bounds how long a crashed run can block the next one when the
// Redis backend is in use.
const runLockTTL = 15 * time.Minute

func main() {
	cfg, err := config.LoadFromEnv("config.yaml")
	if err != nil {
		logger.Error("loading configuration failed", "error", err)
		return
	}
	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	if cfg.Log.RedactPII != nil {
		logger.SetRedactPII(*cfg.Log.RedactPII)
	}

	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		logger.Error("opening database failed", "error", err)
		return
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("database unreachable", "error", err)
		return
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Warn("invalid redis url, falling back to advisory lock", "error", err)
		} else {
			redisClient = redis.NewClient(opts)
			defer redisClient.Close()
		}
	}

	lock := distlock.New(redisClient, db, runLockKey, runLockTTL)
	acquired, err := lock.Acquire(ctx)
	if err != nil {
		logger.Error("acquiring run lock failed", "error", err)
		return
	}
	if !acquired {
		logger.Warn("another run is already in progress, exiting")
		return
	}
	defer func() {
		if err := lock.Release(ctx); err != nil {
			logger.Warn("releasing run lock failed", "error", err)
		}
	}()

	var transport delivery.MailTransport
	switch cfg.Mail.Provider {
	case "ses":
		transport, err = mailer.NewSESTransport(cfg.Mail, cfg.EnvName)
		if err != nil {
			logger.Error("initializing SES transport failed", "error", err)
			return
		}
	default:
		transport = mailer.NewSMTPTransport(cfg.Mail, cfg.EnvName)
	}

	orchestrator := delivery.NewOrchestrator(
		quotes.NewClient(cfg.Quotes),
		postgres.NewStore(db),
		transport,
		cfg.Mail.AdminEmail,
	)
	orchestrator.SetPacer(delivery.NewFixedPacer(cfg.Delivery.SendInterval()))

	orchestrator.Run(ctx)
}
