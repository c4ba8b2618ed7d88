package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drapebook/drapebook/internal/booking"
	"github.com/drapebook/drapebook/internal/platform/db"
)

const createKVTable = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertKV = `INSERT INTO kv_store (key, value, updated_at)
VALUES ($1, $2::jsonb, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

// PostgresStore keeps each collection as one JSONB row in kv_store.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresStore wraps a connected pool.
func NewPostgresStore(pool *pgxpool.Pool, logger *slog.Logger) *PostgresStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{pool: pool, logger: logger}
}

// Migrate creates the key/value table when missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createKVTable); err != nil {
		return fmt.Errorf("store/postgres: migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) get(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT value::text FROM kv_store WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store/postgres: get %s: %w", key, err)
	}
	return raw, nil
}

func (s *PostgresStore) LoadOrders(ctx context.Context) ([]booking.Order, error) {
	raw, err := s.get(ctx, KeyOrders)
	if err != nil {
		return nil, err
	}
	return decodeList[booking.Order](s.logger, KeyOrders, raw), nil
}

func (s *PostgresStore) LoadEnquiries(ctx context.Context) ([]booking.Enquiry, error) {
	raw, err := s.get(ctx, KeyEnquiries)
	if err != nil {
		return nil, err
	}
	return decodeList[booking.Enquiry](s.logger, KeyEnquiries, raw), nil
}

func (s *PostgresStore) LoadCustomers(ctx context.Context) ([]booking.Customer, error) {
	raw, err := s.get(ctx, KeyCustomers)
	if err != nil {
		return nil, err
	}
	return decodeList[booking.Customer](s.logger, KeyCustomers, raw), nil
}

func (s *PostgresStore) LoadSettings(ctx context.Context) (booking.Settings, error) {
	raw, err := s.get(ctx, KeySettings)
	if err != nil {
		return booking.Settings{}, err
	}
	return decodeSettings(s.logger, raw), nil
}

// WithTx stages the writes made by fn and upserts them in one repeatable-read transaction.
func (s *PostgresStore) WithTx(ctx context.Context, fn func(context.Context, booking.TxRepository) error) error {
	tx := &staged{}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if len(tx.keys) == 0 {
		return nil
	}
	return db.WithTx(ctx, s.pool, func(pgTx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, k := range tx.keys {
			batch.Queue(upsertKV, k, string(tx.values[k]))
		}
		if err := pgTx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("store/postgres: upsert: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) LastViewed(ctx context.Context) (int, error) {
	raw, err := s.get(ctx, KeyLastViewed)
	if err != nil || raw == nil {
		return 0, err
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil {
		s.logger.Warn("stored notification baseline unreadable", slog.Any("error", err))
		return 0, nil
	}
	return n, nil
}

func (s *PostgresStore) SetLastViewed(ctx context.Context, n int) error {
	if _, err := s.pool.Exec(ctx, upsertKV, KeyLastViewed, strconv.Itoa(n)); err != nil {
		return fmt.Errorf("store/postgres: set %s: %w", KeyLastViewed, err)
	}
	return nil
}
