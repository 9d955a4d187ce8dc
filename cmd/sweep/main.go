// Command sweep enqueues an immediate promotion expiry sweep, outside the
// daily schedule. Intended for operators after manual promotion data fixes.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/kelseyhightower/envconfig"

	"github.com/kurier-app/kurier/internal/app"
	"github.com/kurier-app/kurier/jobs"
)

// sweepConfig reads only what enqueueing needs. The server config is not
// reused here: it demands JWT_SECRET, which an operator box has no
// business carrying.
type sweepConfig struct {
	RedisAddr string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
}

func loadSweepConfig() (*sweepConfig, error) {
	var cfg sweepConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func main() {
	cfg, err := loadSweepConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(&app.Config{LogFormat: cfg.LogFormat})

	client, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init queue client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("queue client close", slog.Any("error", err))
		}
	}()

	info, err := client.EnqueuePromotionExpiry(context.Background())
	if err != nil {
		logger.Error("enqueue promotion expiry", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("promotion expiry sweep enqueued", slog.String("task_id", info.ID), slog.String("queue", info.Queue))
}
