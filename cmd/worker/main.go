package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/drapebook/drapebook/internal/app"
	"github.com/drapebook/drapebook/internal/observability"
	"github.com/drapebook/drapebook/jobs"
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
	metrics := observability.NewMetrics()

	services, err := app.BuildServices(ctx, cfg, logger, metrics)
	if err != nil {
		logger.Error("build services", slog.Any("error", err))
		os.Exit(1)
	}
	defer services.Close()

	location, err := app.CronLocation(cfg)
	if err != nil {
		logger.Error("cron timezone", slog.Any("error", err))
		os.Exit(1)
	}

	sender := app.DirectSender(cfg, logger)
	messageJob := jobs.NewSendMessageJob(sender, logger, metrics.Jobs())
	digestJob := jobs.NewDailyDigestJob(services.Reports, services.Booking, sender, cfg.Locale, logger, metrics.Jobs())
	warmupJob := jobs.NewReportsWarmupJob(services.Reports, logger, metrics.Jobs())

	digestTask, err := jobs.NewDailyDigestTask(jobs.DailyDigestPayload{})
	if err != nil {
		logger.Error("build digest task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: cfg.RedisConfig().AsynqOpt(),
		Logger:    logger,
		Location:  location,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskSendMessage, Handler: messageJob.Handle},
			{Type: jobs.TaskDailyDigest, Handler: digestJob.Handle},
			{Type: jobs.TaskReportsWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.DigestCron, Task: digestTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: cfg.WarmupCron, Task: jobs.NewReportsWarmupTask(), Options: []asynq.Option{asynq.MaxRetry(1)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	metricsServer := &http.Server{
		Addr:              cfg.WorkerMetricsAddr,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("worker metrics server", slog.Any("error", err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
