package bookinghttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers booking endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(20, time.Minute,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Post("/", h.createOrder)
		r.Route("/{orderID}", func(r chi.Router) {
			r.Get("/", h.getOrder)
			r.Patch("/", h.updateOrder)
			r.Delete("/", h.deleteOrder)
			r.Put("/status", h.setOrderStatus)
			r.Post("/payments", h.addPayment)
			r.Delete("/payments/{paymentID}", h.removePayment)
			r.Post("/charges", h.addCharge)
			r.Delete("/charges/{index}", h.removeCharge)
			r.Get("/share", h.orderShare)
			r.With(limiter).Get("/receipt.pdf", h.orderReceipt)
		})
	})

	r.Route("/enquiries", func(r chi.Router) {
		r.Get("/", h.listEnquiries)
		r.Post("/", h.createEnquiry)
		r.Route("/{enquiryID}", func(r chi.Router) {
			r.Get("/", h.getEnquiry)
			r.Patch("/", h.updateEnquiry)
			r.Delete("/", h.deleteEnquiry)
			r.Put("/status", h.setEnquiryStatus)
			r.Post("/convert", h.convertEnquiry)
			r.Get("/share", h.enquiryShare)
		})
	})

	r.Get("/customers", h.listCustomers)
	r.Post("/customers", h.createCustomer)
	r.Get("/settings", h.getSettings)
	r.Put("/settings", h.saveSettings)
	r.With(limiter).Post("/messages", h.sendMessage)
}

func rateLimitKey(r *http.Request) (string, error) {
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
