// Package store persists the booking collections as whole JSON documents.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/drapebook/drapebook/internal/booking"
)

// Persisted keys.
const (
	KeyOrders     = "orders"
	KeyEnquiries  = "enquiries"
	KeyCustomers  = "customers"
	KeySettings   = "settings"
	KeyLastViewed = "lastViewedNotificationCount"
)

// decodeList parses a stored collection. Undecodable data is logged and treated as empty.
func decodeList[T any](logger *slog.Logger, key string, raw []byte) []T {
	out := []T{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.Warn("stored collection unreadable, starting empty", slog.String("key", key), slog.Any("error", err))
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

func decodeSettings(logger *slog.Logger, raw []byte) booking.Settings {
	if len(raw) == 0 {
		return booking.DefaultSettings()
	}
	var s booking.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		logger.Warn("stored settings unreadable, using defaults", slog.Any("error", err))
		return booking.DefaultSettings()
	}
	return s
}

func encode(key string, v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("store: encode %s: %w", key, err)
	}
	return raw, nil
}

// staged collects whole-value writes until a transaction commits.
type staged struct {
	keys   []string
	values map[string][]byte
}

func (s *staged) put(key string, v any) error {
	raw, err := encode(key, v)
	if err != nil {
		return err
	}
	if s.values == nil {
		s.values = make(map[string][]byte)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = raw
	return nil
}

func (s *staged) SaveOrders(_ context.Context, orders []booking.Order) error {
	return s.put(KeyOrders, orders)
}

func (s *staged) SaveEnquiries(_ context.Context, enquiries []booking.Enquiry) error {
	return s.put(KeyEnquiries, enquiries)
}

func (s *staged) SaveCustomers(_ context.Context, customers []booking.Customer) error {
	return s.put(KeyCustomers, customers)
}

func (s *staged) SaveSettings(_ context.Context, settings booking.Settings) error {
	return s.put(KeySettings, settings)
}
