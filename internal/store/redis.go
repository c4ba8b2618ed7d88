package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/drapebook/drapebook/internal/booking"
)

// RedisStore keeps each collection as one JSON string under a namespaced key.
type RedisStore struct {
	client    *redis.Client
	namespace string
	logger    *slog.Logger
}

// NewRedisStore wraps a connected client. An empty namespace defaults to "drapebook".
func NewRedisStore(client *redis.Client, namespace string, logger *slog.Logger) *RedisStore {
	if namespace == "" {
		namespace = "drapebook"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore{client: client, namespace: namespace, logger: logger}
}

func (s *RedisStore) key(name string) string {
	return s.namespace + ":" + name
}

func (s *RedisStore) get(ctx context.Context, name string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store/redis: get %s: %w", name, err)
	}
	return raw, nil
}

func (s *RedisStore) LoadOrders(ctx context.Context) ([]booking.Order, error) {
	raw, err := s.get(ctx, KeyOrders)
	if err != nil {
		return nil, err
	}
	return decodeList[booking.Order](s.logger, KeyOrders, raw), nil
}

func (s *RedisStore) LoadEnquiries(ctx context.Context) ([]booking.Enquiry, error) {
	raw, err := s.get(ctx, KeyEnquiries)
	if err != nil {
		return nil, err
	}
	return decodeList[booking.Enquiry](s.logger, KeyEnquiries, raw), nil
}

func (s *RedisStore) LoadCustomers(ctx context.Context) ([]booking.Customer, error) {
	raw, err := s.get(ctx, KeyCustomers)
	if err != nil {
		return nil, err
	}
	return decodeList[booking.Customer](s.logger, KeyCustomers, raw), nil
}

func (s *RedisStore) LoadSettings(ctx context.Context) (booking.Settings, error) {
	raw, err := s.get(ctx, KeySettings)
	if err != nil {
		return booking.Settings{}, err
	}
	return decodeSettings(s.logger, raw), nil
}

// WithTx stages the writes made by fn and applies them in a single MULTI/EXEC block.
// Nothing is written when fn fails.
func (s *RedisStore) WithTx(ctx context.Context, fn func(context.Context, booking.TxRepository) error) error {
	tx := &staged{}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if len(tx.keys) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range tx.keys {
			pipe.Set(ctx, s.key(k), tx.values[k], 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store/redis: exec: %w", err)
	}
	return nil
}

// LastViewed returns the persisted notification baseline, 0 when unset or unreadable.
func (s *RedisStore) LastViewed(ctx context.Context) (int, error) {
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

func (s *RedisStore) SetLastViewed(ctx context.Context, n int) error {
	if err := s.client.Set(ctx, s.key(KeyLastViewed), n, 0).Err(); err != nil {
		return fmt.Errorf("store/redis: set %s: %w", KeyLastViewed, err)
	}
	return nil
}
