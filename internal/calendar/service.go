package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/drapebook/drapebook/internal/booking"
)

// Source loads the collections shown on the calendar.
type Source interface {
	ListOrders(ctx context.Context) ([]booking.Order, error)
	ListEnquiries(ctx context.Context) ([]booking.Enquiry, error)
}

// MonthView is a populated month grid.
type MonthView struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Weeks []Week     `json:"weeks"`
}

// Service builds populated month views.
type Service struct {
	source Source
	clock  func() time.Time
}

// NewService constructs the calendar service. A nil clock uses time.Now.
func NewService(source Source, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{source: source, clock: clock}
}

// Month returns the grid for year/month with bookings placed on their event dates.
func (s *Service) Month(ctx context.Context, year int, month time.Month) (MonthView, error) {
	if month < time.January || month > time.December {
		return MonthView{}, fmt.Errorf("%w: month must be 1-12", booking.ErrValidation)
	}
	orders, err := s.source.ListOrders(ctx)
	if err != nil {
		return MonthView{}, fmt.Errorf("load orders: %w", err)
	}
	enquiries, err := s.source.ListEnquiries(ctx)
	if err != nil {
		return MonthView{}, fmt.Errorf("load enquiries: %w", err)
	}
	weeks := Populate(GenerateMonth(year, month, s.clock()), orders, enquiries)
	return MonthView{Year: year, Month: month, Weeks: weeks}, nil
}
