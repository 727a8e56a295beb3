package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/zainulsyai/eko-hajj/internal/app"
	jobmetrics "github.com/zainulsyai/eko-hajj/internal/jobs"
	"github.com/zainulsyai/eko-hajj/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if cfg.StoreBackend != app.StoreBackendRedis {
		logger.Error("worker requires shared records", slog.String("store_backend", cfg.StoreBackend))
		os.Exit(1)
	}

	redisClient, err := app.OpenRedis(ctx, cfg)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	store, err := app.OpenStore(ctx, cfg, redisClient, logger, app.StoreOptions{Attach: true, SkipLoadDelay: true})
	if err != nil {
		logger.Error("attach record store", slog.Any("error", err))
		os.Exit(1)
	}
	analyticsService, analyticsCache := app.NewAnalytics(cfg, store, redisClient, logger)
	store.OnChange(analyticsCache.Invalidate)

	metrics := jobmetrics.NewMetrics(nil)
	warmupJob := jobs.NewWarmupJob(analyticsService, logger, metrics)
	reseedJob := jobs.NewReseedJob(store, logger, metrics)

	var cron []jobs.CronRegistration
	if cfg.WarmupCron != "" {
		task, err := jobs.NewWarmupTask("schedule")
		if err != nil {
			logger.Error("build warmup task", slog.Any("error", err))
			os.Exit(1)
		}
		cron = append(cron, jobs.CronRegistration{Spec: cfg.WarmupCron, Task: task, Options: []asynq.Option{asynq.MaxRetry(3)}})
	}
	if cfg.ReseedCron != "" {
		task, err := jobs.NewReseedTask()
		if err != nil {
			logger.Error("build reseed task", slog.Any("error", err))
			os.Exit(1)
		}
		cron = append(cron, jobs.CronRegistration{Spec: cfg.ReseedCron, Task: task, Options: []asynq.Option{asynq.MaxRetry(1)}})
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskDashboardWarmup, Handler: warmupJob.Handle},
			{Type: jobs.TaskReseed, Handler: reseedJob.Handle},
		},
		Cron: cron,
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting worker", slog.Int("cron_entries", len(cron)))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
