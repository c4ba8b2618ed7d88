// Package backup exports and restores the booking data as one JSON document.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/drapebook/drapebook/internal/booking"
)

// ErrInvalidBackup is returned when an uploaded document cannot be parsed.
var ErrInvalidBackup = errors.New("invalid backup document")

// Document is the backup file layout.
type Document struct {
	Orders     []booking.Order   `json:"orders"`
	Enquiries  []booking.Enquiry `json:"enquiries"`
	Settings   booking.Settings  `json:"settings"`
	ExportedAt time.Time         `json:"exportedAt"`
}

// Invalidator drops cached reports after a restore.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// Service reads and replaces collections through the booking repository.
type Service struct {
	repo        booking.Repository
	invalidator Invalidator
	logger      *slog.Logger
	clock       func() time.Time
}

// NewService builds the backup service. invalidator may be nil.
func NewService(repo booking.Repository, invalidator Invalidator, logger *slog.Logger, clock func() time.Time) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Service{repo: repo, invalidator: invalidator, logger: logger, clock: clock}
}

// Export snapshots orders, enquiries and settings.
func (s *Service) Export(ctx context.Context) (Document, error) {
	orders, err := s.repo.LoadOrders(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("load orders: %w", err)
	}
	enquiries, err := s.repo.LoadEnquiries(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("load enquiries: %w", err)
	}
	settings, err := s.repo.LoadSettings(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("load settings: %w", err)
	}
	return Document{Orders: orders, Enquiries: enquiries, Settings: settings, ExportedAt: s.clock().UTC()}, nil
}

// Parse decodes an uploaded document. Only JSON syntax and shape are checked.
func Parse(r io.Reader) (Document, error) {
	var raw struct {
		Orders     []booking.Order   `json:"orders"`
		Enquiries  []booking.Enquiry `json:"enquiries"`
		Settings   *booking.Settings `json:"settings"`
		ExportedAt time.Time         `json:"exportedAt"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	doc := Document{Orders: raw.Orders, Enquiries: raw.Enquiries, ExportedAt: raw.ExportedAt}
	if doc.Orders == nil {
		doc.Orders = []booking.Order{}
	}
	if doc.Enquiries == nil {
		doc.Enquiries = []booking.Enquiry{}
	}
	if raw.Settings != nil {
		doc.Settings = *raw.Settings
	} else {
		doc.Settings = booking.DefaultSettings()
	}
	return doc, nil
}

// Restore replaces orders, enquiries and settings from r in one write. Nothing changes when
// the document cannot be parsed. Customers are left as they are.
func (s *Service) Restore(ctx context.Context, r io.Reader) (Document, error) {
	doc, err := Parse(r)
	if err != nil {
		return Document{}, err
	}
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx booking.TxRepository) error {
		if err := tx.SaveOrders(ctx, doc.Orders); err != nil {
			return fmt.Errorf("save orders: %w", err)
		}
		if err := tx.SaveEnquiries(ctx, doc.Enquiries); err != nil {
			return fmt.Errorf("save enquiries: %w", err)
		}
		return tx.SaveSettings(ctx, doc.Settings)
	})
	if err != nil {
		return Document{}, fmt.Errorf("restore: %w", err)
	}
	if s.invalidator != nil {
		if err := s.invalidator.Bump(ctx); err != nil {
			s.logger.Warn("invalidate reports after restore", slog.Any("error", err))
		}
	}
	s.logger.Info("backup restored",
		slog.Int("orders", len(doc.Orders)),
		slog.Int("enquiries", len(doc.Enquiries)),
		slog.Time("exported_at", doc.ExportedAt))
	return doc, nil
}
