package reportshttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers report, export and backup endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Get("/overview", h.handleOverview)
	r.Get("/dashboard", h.handleDashboard)
	r.Get("/notifications", h.handleNotifications)
	r.Post("/notifications/viewed", h.handleMarkViewed)
	r.Get("/calendar", h.handleCalendar)
	r.Route("/reports", func(r chi.Router) {
		r.Get("/monthly", h.handleMonthly)
		r.Get("/customers", h.handleCustomers)
		r.Get("/referrals", h.handleReferrals)
	})
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/export/orders.csv", h.handleCSV)
		gr.Get("/export/orders.xlsx", h.handleXLSX)
		gr.Get("/backup", h.handleBackupExport)
		gr.Post("/backup/restore", h.handleBackupRestore)
	})
}
