package reportshttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/drapebook/drapebook/internal/backup"
	"github.com/drapebook/drapebook/internal/booking"
	"github.com/drapebook/drapebook/internal/calendar"
	"github.com/drapebook/drapebook/internal/export"
	"github.com/drapebook/drapebook/internal/platform/httpx"
	"github.com/drapebook/drapebook/internal/reports"
)

var monthRegex = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

const requestTimeout = 5 * time.Second

// ReportService exposes the derived views.
type ReportService interface {
	Dashboard(ctx context.Context) (reports.Dashboard, error)
	Notifications(ctx context.Context) (reports.Notifications, error)
	MarkNotificationsViewed(ctx context.Context) (reports.Notifications, error)
	MonthlyStats(ctx context.Context, year int, month time.Month) (reports.MonthlyStats, error)
	CustomerReport(ctx context.Context) ([]reports.CustomerSummary, error)
	ReferralReport(ctx context.Context) (reports.ReferralReport, error)
}

// CalendarService builds month grids.
type CalendarService interface {
	Month(ctx context.Context, year int, month time.Month) (calendar.MonthView, error)
}

// OrderLister feeds the spreadsheet exports.
type OrderLister interface {
	ListOrders(ctx context.Context) ([]booking.Order, error)
}

// BackupService exports and restores the full data set.
type BackupService interface {
	Export(ctx context.Context) (backup.Document, error)
	Restore(ctx context.Context, r io.Reader) (backup.Document, error)
}

// Handler serves dashboards, reports, exports and backups.
type Handler struct {
	logger   *slog.Logger
	reports  ReportService
	calendar CalendarService
	orders   OrderLister
	backups  BackupService
	bufPool  sync.Pool
	now      func() time.Time
}

// NewHandler constructs the reports HTTP handler.
func NewHandler(logger *slog.Logger, reportSvc ReportService, calendarSvc CalendarService, orders OrderLister, backups BackupService) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		logger:   logger,
		reports:  reportSvc,
		calendar: calendarSvc,
		orders:   orders,
		backups:  backups,
		now:      time.Now,
	}
	h.bufPool.New = func() any { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the clock used for default months and file names.
func (h *Handler) WithNow(now func() time.Time) *Handler {
	if now != nil {
		h.now = now
	}
	return h
}

type overview struct {
	Dashboard     reports.Dashboard     `json:"dashboard"`
	Notifications reports.Notifications `json:"notifications"`
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var out overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Dashboard, err = h.reports.Dashboard(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.Notifications, err = h.reports.Notifications(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.reports.Dashboard(r.Context())
	h.respond(w, r, dashboard, err)
}

func (h *Handler) handleNotifications(w http.ResponseWriter, r *http.Request) {
	state, err := h.reports.Notifications(r.Context())
	h.respond(w, r, state, err)
}

func (h *Handler) handleMarkViewed(w http.ResponseWriter, r *http.Request) {
	state, err := h.reports.MarkNotificationsViewed(r.Context())
	h.respond(w, r, state, err)
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	year, month, err := h.parseMonth(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	stats, err := h.reports.MonthlyStats(r.Context(), year, month)
	h.respond(w, r, stats, err)
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	year, month, err := h.parseMonth(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	view, err := h.calendar.Month(r.Context(), year, month)
	h.respond(w, r, view, err)
}

func (h *Handler) handleCustomers(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.reports.CustomerReport(r.Context())
	h.respond(w, r, summaries, err)
}

func (h *Handler) handleReferrals(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.ReferralReport(r.Context())
	h.respond(w, r, report, err)
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	h.writeExport(w, r, "text/csv", "csv", export.WriteOrdersCSV)
}

func (h *Handler) handleXLSX(w http.ResponseWriter, r *http.Request) {
	h.writeExport(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", export.WriteOrdersXLSX)
}

func (h *Handler) writeExport(w http.ResponseWriter, r *http.Request, contentType, ext string, write func(io.Writer, []booking.Order) error) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.bufPool.Put(buf)

	if err := write(buf, orders); err != nil {
		h.fail(w, r, fmt.Errorf("export orders: %w", err))
		return
	}
	name := fmt.Sprintf("orders-%s.%s", h.now().Format("2006-01-02"), ext)
	httpx.Attachment(w, contentType, name, buf.Bytes())
}

func (h *Handler) handleBackupExport(w http.ResponseWriter, r *http.Request) {
	doc, err := h.backups.Export(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	name := fmt.Sprintf("drapebook-backup-%s.json", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	httpx.JSON(w, http.StatusOK, doc)
}

type restoreResult struct {
	Orders    int `json:"orders"`
	Enquiries int `json:"enquiries"`
}

func (h *Handler) handleBackupRestore(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, 32<<20)
	doc, err := h.backups.Restore(r.Context(), body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, restoreResult{Orders: len(doc.Orders), Enquiries: len(doc.Enquiries)})
}

// parseMonth reads ?month=YYYY-MM, defaulting to the current month.
func (h *Handler) parseMonth(r *http.Request) (int, time.Month, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		now := h.now()
		return now.Year(), now.Month(), nil
	}
	m := monthRegex.FindStringSubmatch(raw)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: month must be YYYY-MM", httpx.ErrBadRequest)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	return year, time.Month(month), nil
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, body any, err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, body)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warn("report request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	httpx.RespondError(w, classify(err))
}

// classify maps domain sentinels onto the HTTP error kinds.
func classify(err error) error {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		return httpx.Classify(httpx.ErrNotFound, err)
	case errors.Is(err, booking.ErrValidation):
		return httpx.Classify(httpx.ErrValidation, err)
	case errors.Is(err, backup.ErrInvalidBackup):
		return httpx.Classify(httpx.ErrBadRequest, err)
	}
	return err
}
