package reports

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/drapebook/drapebook/internal/booking"
	"github.com/drapebook/drapebook/internal/calendar"
)

// Source exposes the booking collections.
type Source interface {
	ListOrders(ctx context.Context) ([]booking.Order, error)
	ListEnquiries(ctx context.Context) ([]booking.Enquiry, error)
	ListCustomers(ctx context.Context) ([]booking.Customer, error)
	Phones() booking.PhoneCanonicalizer
}

// CounterStore persists the notification baseline.
type CounterStore interface {
	LastViewed(ctx context.Context) (int, error)
	SetLastViewed(ctx context.Context, n int) error
}

// Notifications is the badge state shown to the user.
type Notifications struct {
	Total      int `json:"total"`
	LastViewed int `json:"lastViewed"`
	Unread     int `json:"unread"`
}

// Service coordinates report builds with the cache layer.
type Service struct {
	source  Source
	counter CounterStore
	cache   *Cache
	logger  *slog.Logger
	clock   func() time.Time
}

// NewService wires the collaborators. cache may be nil.
func NewService(source Source, counter CounterStore, cache *Cache, logger *slog.Logger, clock func() time.Time) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Service{source: source, counter: counter, cache: cache, logger: logger, clock: clock}
}

// Dashboard returns today's notification sets.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	today := s.clock()
	var out Dashboard
	err := s.cached(ctx, &out, func(ctx context.Context) (any, error) {
		orders, err := s.source.ListOrders(ctx)
		if err != nil {
			return nil, fmt.Errorf("load orders: %w", err)
		}
		enquiries, err := s.source.ListEnquiries(ctx)
		if err != nil {
			return nil, fmt.Errorf("load enquiries: %w", err)
		}
		return BuildDashboard(orders, enquiries, today), nil
	}, "dashboard", calendar.DateKey(today))
	return out, err
}

// Notifications reports the unread badge count. A baseline above the current total is
// clamped down and persisted.
func (s *Service) Notifications(ctx context.Context) (Notifications, error) {
	dash, err := s.Dashboard(ctx)
	if err != nil {
		return Notifications{}, err
	}
	baseline, err := s.counter.LastViewed(ctx)
	if err != nil {
		return Notifications{}, fmt.Errorf("load notification baseline: %w", err)
	}
	state := UnreadState(dash.TotalNotifications, baseline)
	if state.LastViewed != baseline {
		if err := s.counter.SetLastViewed(ctx, state.LastViewed); err != nil {
			return Notifications{}, fmt.Errorf("clamp notification baseline: %w", err)
		}
	}
	return state, nil
}

// MarkNotificationsViewed sets the baseline to the current total.
func (s *Service) MarkNotificationsViewed(ctx context.Context) (Notifications, error) {
	dash, err := s.Dashboard(ctx)
	if err != nil {
		return Notifications{}, err
	}
	if err := s.counter.SetLastViewed(ctx, dash.TotalNotifications); err != nil {
		return Notifications{}, fmt.Errorf("save notification baseline: %w", err)
	}
	return Notifications{Total: dash.TotalNotifications, LastViewed: dash.TotalNotifications}, nil
}

// UnreadState applies the clamp rule to a total and a stored baseline.
func UnreadState(total, lastViewed int) Notifications {
	if lastViewed > total {
		lastViewed = total
	}
	if lastViewed < 0 {
		lastViewed = 0
	}
	return Notifications{Total: total, LastViewed: lastViewed, Unread: max(0, total-lastViewed)}
}

// MonthlyStats returns the summary for year/month.
func (s *Service) MonthlyStats(ctx context.Context, year int, month time.Month) (MonthlyStats, error) {
	if month < time.January || month > time.December {
		return MonthlyStats{}, fmt.Errorf("%w: month must be 1-12", booking.ErrValidation)
	}
	var out MonthlyStats
	err := s.cached(ctx, &out, func(ctx context.Context) (any, error) {
		orders, err := s.source.ListOrders(ctx)
		if err != nil {
			return nil, fmt.Errorf("load orders: %w", err)
		}
		return BuildMonthlyStats(orders, year, month), nil
	}, "monthly", strconv.Itoa(year), strconv.Itoa(int(month)))
	return out, err
}

// CustomerReport returns lifetime value per customer.
func (s *Service) CustomerReport(ctx context.Context) ([]CustomerSummary, error) {
	var out []CustomerSummary
	err := s.cached(ctx, &out, func(ctx context.Context) (any, error) {
		customers, err := s.source.ListCustomers(ctx)
		if err != nil {
			return nil, fmt.Errorf("load customers: %w", err)
		}
		orders, err := s.source.ListOrders(ctx)
		if err != nil {
			return nil, fmt.Errorf("load orders: %w", err)
		}
		enquiries, err := s.source.ListEnquiries(ctx)
		if err != nil {
			return nil, fmt.Errorf("load enquiries: %w", err)
		}
		return BuildCustomerReport(customers, orders, enquiries, s.source.Phones()), nil
	}, "customers")
	return out, err
}

// ReferralReport groups customers by referral source.
func (s *Service) ReferralReport(ctx context.Context) (ReferralReport, error) {
	var out ReferralReport
	err := s.cached(ctx, &out, func(ctx context.Context) (any, error) {
		customers, err := s.source.ListCustomers(ctx)
		if err != nil {
			return nil, fmt.Errorf("load customers: %w", err)
		}
		return BuildReferralReport(customers), nil
	}, "referrals")
	return out, err
}

// Warm prebuilds the reports most likely to be requested next.
func (s *Service) Warm(ctx context.Context) error {
	if _, err := s.Dashboard(ctx); err != nil {
		return err
	}
	now := s.clock()
	if _, err := s.MonthlyStats(ctx, now.Year(), now.Month()); err != nil {
		return err
	}
	_, err := s.CustomerReport(ctx)
	return err
}

// cached reads through the cache. Cache failures fall back to a direct build.
func (s *Service) cached(ctx context.Context, dest any, build func(context.Context) (any, error), parts ...string) error {
	key, err := s.cache.BuildKey(ctx, parts...)
	if err == nil {
		err = s.cache.FetchJSON(ctx, key, dest, build)
		if err == nil {
			return nil
		}
		var loaderErr *LoaderError
		if errors.As(err, &loaderErr) {
			return loaderErr.Err
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	value, buildErr := build(ctx)
	if buildErr != nil {
		return buildErr
	}
	s.logger.Warn("reports cache unavailable", slog.Any("error", err))
	return remarshal(value, dest)
}
