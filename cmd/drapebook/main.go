package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/drapebook/drapebook/internal/app"
	bookinghttp "github.com/drapebook/drapebook/internal/booking/http"
	"github.com/drapebook/drapebook/internal/notify"
	"github.com/drapebook/drapebook/internal/observability"
	reportshttp "github.com/drapebook/drapebook/internal/reports/http"
	"github.com/drapebook/drapebook/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	redisOpt := cfg.RedisConfig().AsynqOpt()
	queue, err := jobs.NewClient(redisOpt)
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := queue.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	var sender notify.Sender = queue
	if !cfg.QueueMessages {
		sender = app.DirectSender(cfg, logger)
	}
	shareService := notify.NewService(services.Booking, sender, cfg.Locale, logger)

	var receipts bookinghttp.ReceiptRenderer
	if services.Receipts != nil {
		if err := services.Gotenberg.Ping(ctx); err != nil {
			logger.Warn("gotenberg ping", slog.Any("error", err))
		}
		receipts = services.Receipts
	}

	inspector := asynq.NewInspector(redisOpt)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		BookingHandler: bookinghttp.NewHandler(logger, services.Booking, shareService, receipts),
		ReportsHandler: reportshttp.NewHandler(logger, services.Reports, services.Calendar, services.Booking, services.Backup),
		JobHandler:     jobs.NewHandler(inspector, queue, logger),
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
