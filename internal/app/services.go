package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/drapebook/drapebook/internal/backup"
	"github.com/drapebook/drapebook/internal/booking"
	"github.com/drapebook/drapebook/internal/calendar"
	"github.com/drapebook/drapebook/internal/notify"
	"github.com/drapebook/drapebook/internal/observability"
	"github.com/drapebook/drapebook/internal/platform/cache"
	"github.com/drapebook/drapebook/internal/platform/db"
	"github.com/drapebook/drapebook/internal/reports"
	"github.com/drapebook/drapebook/internal/store"
	"github.com/drapebook/drapebook/report"
)

// Store is the persistence contract both back ends satisfy.
type Store interface {
	booking.Repository
	reports.CounterStore
}

// Services holds the wired domain services shared by the API and the worker.
type Services struct {
	Redis     *redis.Client
	Pool      *pgxpool.Pool
	Store     Store
	Cache     *reports.Cache
	Booking   *booking.Service
	Reports   *reports.Service
	Calendar  *calendar.Service
	Backup    *backup.Service
	Receipts  *report.Receipts
	Gotenberg *report.Client
	// Clock reads the current time in the business timezone.
	Clock func() time.Time
}

// Close releases the connections opened by BuildServices.
func (s *Services) Close() {
	if s == nil {
		return
	}
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
}

// BuildServices connects the configured store and wires the domain services.
func BuildServices(ctx context.Context, cfg *Config, logger *slog.Logger, metrics *observability.Metrics) (*Services, error) {
	clock, err := BusinessClock(cfg)
	if err != nil {
		return nil, err
	}
	redisClient, err := cache.New(ctx, cfg.RedisConfig())
	if err != nil {
		return nil, err
	}
	svc := &Services{Redis: redisClient, Clock: clock}

	switch cfg.StoreDriver {
	case StorePostgres:
		pool, err := db.New(ctx, db.Config{DSN: cfg.PGDSN, MaxConns: cfg.PGMaxConns})
		if err != nil {
			svc.Close()
			return nil, err
		}
		svc.Pool = pool
		pgStore := store.NewPostgresStore(pool, logger)
		if err := pgStore.Migrate(ctx); err != nil {
			svc.Close()
			return nil, err
		}
		svc.Store = pgStore
	default:
		svc.Store = store.NewRedisStore(redisClient, cfg.RedisNamespace, logger)
	}
	logger.Info("store ready", slog.String("driver", cfg.StoreDriver))

	svc.Cache = reports.NewCache(redisClient, cfg.RedisNamespace, cfg.ReportCacheTTL)
	svc.Booking = booking.NewService(svc.Store, booking.ServiceConfig{
		Phones:      booking.PhoneCanonicalizer{CountryCode: cfg.DefaultCountryCode},
		Invalidator: svc.Cache,
		Events:      metrics,
		Logger:      logger,
		Clock:       clock,
	})
	svc.Reports = reports.NewService(svc.Booking, svc.Store, svc.Cache, logger, clock)
	svc.Calendar = calendar.NewService(svc.Booking, clock)
	svc.Backup = backup.NewService(svc.Store, svc.Cache, logger, clock)

	if cfg.GotenbergURL != "" {
		svc.Gotenberg = report.NewClient(cfg.GotenbergURL, 30*time.Second)
		svc.Receipts = report.NewReceipts(svc.Booking, svc.Gotenberg, clock)
	}
	return svc, nil
}

// DirectSender picks the provider used to deliver messages without the queue.
func DirectSender(cfg *Config, logger *slog.Logger) notify.Sender {
	if cfg.TwilioEnabled() {
		return notify.NewTwilioSender(notify.TwilioConfig{
			AccountSID:     cfg.TwilioAccountSID,
			AuthToken:      cfg.TwilioAuthToken,
			FromNumber:     cfg.TwilioFromNumber,
			WhatsAppNumber: cfg.TwilioWhatsAppFrom,
		}, logger)
	}
	return notify.LogSender{Logger: logger}
}

// BusinessClock returns time.Now in the configured business timezone.
func BusinessClock(cfg *Config) (func() time.Time, error) {
	loc, err := CronLocation(cfg)
	if err != nil {
		return nil, err
	}
	return func() time.Time { return time.Now().In(loc) }, nil
}

// CronLocation resolves the configured business timezone.
func CronLocation(cfg *Config) (*time.Location, error) {
	loc, err := time.LoadLocation(cfg.CronTimezone)
	if err != nil {
		return nil, fmt.Errorf("load cron timezone: %w", err)
	}
	return loc, nil
}
