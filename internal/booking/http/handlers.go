package bookinghttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/drapebook/drapebook/internal/booking"
	"github.com/drapebook/drapebook/internal/notify"
	"github.com/drapebook/drapebook/internal/platform/httpx"
)

// BookingService is the booking contract used by the handler.
type BookingService interface {
	ListOrders(ctx context.Context) ([]booking.Order, error)
	GetOrder(ctx context.Context, id string) (*booking.Order, error)
	CreateOrder(ctx context.Context, req booking.CreateOrderRequest) (*booking.Order, error)
	UpdateOrder(ctx context.Context, id string, req booking.UpdateOrderRequest) (*booking.Order, error)
	SetOrderStatus(ctx context.Context, id string, status booking.OrderStatus) (*booking.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	AddPayment(ctx context.Context, id string, in booking.PaymentInput) (*booking.Order, error)
	RemovePayment(ctx context.Context, id, paymentID string) (*booking.Order, error)
	AddCharge(ctx context.Context, id string, req booking.ChargeRequest) (*booking.Order, error)
	RemoveCharge(ctx context.Context, id string, index int) (*booking.Order, error)

	ListEnquiries(ctx context.Context) ([]booking.Enquiry, error)
	GetEnquiry(ctx context.Context, id string) (*booking.Enquiry, error)
	CreateEnquiry(ctx context.Context, req booking.CreateEnquiryRequest) (*booking.Enquiry, error)
	UpdateEnquiry(ctx context.Context, id string, req booking.UpdateEnquiryRequest) (*booking.Enquiry, error)
	SetEnquiryStatus(ctx context.Context, id string, status booking.EnquiryStatus) (*booking.Enquiry, error)
	DeleteEnquiry(ctx context.Context, id string) error
	ConvertEnquiry(ctx context.Context, id string) (*booking.Order, error)

	ListCustomers(ctx context.Context) ([]booking.Customer, error)
	CreateCustomer(ctx context.Context, req booking.CreateCustomerRequest) (*booking.Customer, error)
	FindCustomerByPhone(ctx context.Context, phone string) (booking.Customer, bool, error)

	GetSettings(ctx context.Context) (booking.Settings, error)
	SaveSettings(ctx context.Context, settings booking.Settings) (booking.Settings, error)
}

// ShareService composes and delivers customer messages.
type ShareService interface {
	OrderShare(ctx context.Context, orderID, paymentID string) (notify.Share, error)
	EnquiryShare(ctx context.Context, enquiryID string) (notify.Share, error)
	Deliver(ctx context.Context, share notify.Share, channel notify.Channel) (string, error)
}

// ReceiptRenderer produces an order receipt PDF.
type ReceiptRenderer interface {
	Receipt(ctx context.Context, orderID string) ([]byte, error)
}

// Handler serves the booking API.
type Handler struct {
	logger   *slog.Logger
	service  BookingService
	share    ShareService
	receipts ReceiptRenderer
	timeout  time.Duration
}

// NewHandler constructs the booking HTTP handler. share and receipts may be nil.
func NewHandler(logger *slog.Logger, service BookingService, share ShareService, receipts ReceiptRenderer) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, share: share, receipts: receipts, timeout: 10 * time.Second}
}

// ============================================================================
// ORDERS
// ============================================================================

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	h.respond(w, r, http.StatusOK, orders, err)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "orderID"))
	h.respond(w, r, http.StatusOK, order, err)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req booking.CreateOrderRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	order, err := h.service.CreateOrder(r.Context(), req)
	h.respond(w, r, http.StatusCreated, order, err)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req booking.UpdateOrderRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	order, err := h.service.UpdateOrder(r.Context(), chi.URLParam(r, "orderID"), req)
	h.respond(w, r, http.StatusOK, order, err)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	order, err := h.service.SetOrderStatus(r.Context(), chi.URLParam(r, "orderID"), booking.OrderStatus(req.Status))
	h.respond(w, r, http.StatusOK, order, err)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOrder(r.Context(), chi.URLParam(r, "orderID")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addPayment(w http.ResponseWriter, r *http.Request) {
	var in booking.PaymentInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	order, err := h.service.AddPayment(r.Context(), chi.URLParam(r, "orderID"), in)
	h.respond(w, r, http.StatusCreated, order, err)
}

func (h *Handler) removePayment(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.RemovePayment(r.Context(), chi.URLParam(r, "orderID"), chi.URLParam(r, "paymentID"))
	h.respond(w, r, http.StatusOK, order, err)
}

func (h *Handler) addCharge(w http.ResponseWriter, r *http.Request) {
	var req booking.ChargeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	order, err := h.service.AddCharge(r.Context(), chi.URLParam(r, "orderID"), req)
	h.respond(w, r, http.StatusCreated, order, err)
}

func (h *Handler) removeCharge(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.fail(w, r, fmt.Errorf("%w: charge index must be a number", httpx.ErrBadRequest))
		return
	}
	order, err := h.service.RemoveCharge(r.Context(), chi.URLParam(r, "orderID"), index)
	h.respond(w, r, http.StatusOK, order, err)
}

func (h *Handler) orderShare(w http.ResponseWriter, r *http.Request) {
	if h.share == nil {
		httpx.Problem(w, http.StatusNotImplemented, "Not Implemented", "messaging is not configured")
		return
	}
	share, err := h.share.OrderShare(r.Context(), chi.URLParam(r, "orderID"), r.URL.Query().Get("payment"))
	h.respond(w, r, http.StatusOK, share, err)
}

func (h *Handler) orderReceipt(w http.ResponseWriter, r *http.Request) {
	if h.receipts == nil {
		httpx.Problem(w, http.StatusNotImplemented, "Not Implemented", "receipt rendering is not configured")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()
	orderID := chi.URLParam(r, "orderID")
	pdf, err := h.receipts.Receipt(ctx, orderID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.Attachment(w, "application/pdf", "receipt-"+orderID+".pdf", pdf)
}

// ============================================================================
// ENQUIRIES
// ============================================================================

func (h *Handler) listEnquiries(w http.ResponseWriter, r *http.Request) {
	enquiries, err := h.service.ListEnquiries(r.Context())
	h.respond(w, r, http.StatusOK, enquiries, err)
}

func (h *Handler) getEnquiry(w http.ResponseWriter, r *http.Request) {
	enquiry, err := h.service.GetEnquiry(r.Context(), chi.URLParam(r, "enquiryID"))
	h.respond(w, r, http.StatusOK, enquiry, err)
}

func (h *Handler) createEnquiry(w http.ResponseWriter, r *http.Request) {
	var req booking.CreateEnquiryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	enquiry, err := h.service.CreateEnquiry(r.Context(), req)
	h.respond(w, r, http.StatusCreated, enquiry, err)
}

func (h *Handler) updateEnquiry(w http.ResponseWriter, r *http.Request) {
	var req booking.UpdateEnquiryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	enquiry, err := h.service.UpdateEnquiry(r.Context(), chi.URLParam(r, "enquiryID"), req)
	h.respond(w, r, http.StatusOK, enquiry, err)
}

func (h *Handler) setEnquiryStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	enquiry, err := h.service.SetEnquiryStatus(r.Context(), chi.URLParam(r, "enquiryID"), booking.EnquiryStatus(req.Status))
	h.respond(w, r, http.StatusOK, enquiry, err)
}

func (h *Handler) deleteEnquiry(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEnquiry(r.Context(), chi.URLParam(r, "enquiryID")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) convertEnquiry(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.ConvertEnquiry(r.Context(), chi.URLParam(r, "enquiryID"))
	h.respond(w, r, http.StatusCreated, order, err)
}

func (h *Handler) enquiryShare(w http.ResponseWriter, r *http.Request) {
	if h.share == nil {
		httpx.Problem(w, http.StatusNotImplemented, "Not Implemented", "messaging is not configured")
		return
	}
	share, err := h.share.EnquiryShare(r.Context(), chi.URLParam(r, "enquiryID"))
	h.respond(w, r, http.StatusOK, share, err)
}

type sendRequest struct {
	Kind      string `json:"kind"`
	ID        string `json:"id"`
	PaymentID string `json:"paymentId,omitempty"`
	Channel   string `json:"channel,omitempty"`
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	if h.share == nil {
		httpx.Problem(w, http.StatusNotImplemented, "Not Implemented", "messaging is not configured")
		return
	}
	var req sendRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var (
		share notify.Share
		err   error
	)
	switch notify.Kind(req.Kind) {
	case notify.KindOrderConfirmation, notify.KindPaymentReceipt:
		share, err = h.share.OrderShare(ctx, req.ID, req.PaymentID)
	case notify.KindEnquiryAck:
		share, err = h.share.EnquiryShare(ctx, req.ID)
	default:
		err = fmt.Errorf("%w: unknown message kind %q", booking.ErrValidation, req.Kind)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ref, err := h.share.Deliver(ctx, share, notify.Channel(req.Channel))
	h.respond(w, r, http.StatusAccepted, map[string]string{"reference": ref, "kind": string(share.Kind)}, err)
}

// ============================================================================
// CUSTOMERS & SETTINGS
// ============================================================================

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	if phone := r.URL.Query().Get("phone"); phone != "" {
		customer, ok, err := h.service.FindCustomerByPhone(r.Context(), phone)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		matches := []booking.Customer{}
		if ok {
			matches = append(matches, customer)
		}
		httpx.JSON(w, http.StatusOK, matches)
		return
	}
	customers, err := h.service.ListCustomers(r.Context())
	h.respond(w, r, http.StatusOK, customers, err)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req booking.CreateCustomerRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	customer, err := h.service.CreateCustomer(r.Context(), req)
	h.respond(w, r, http.StatusCreated, customer, err)
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	h.respond(w, r, http.StatusOK, settings, err)
}

func (h *Handler) saveSettings(w http.ResponseWriter, r *http.Request) {
	var settings booking.Settings
	if err := httpx.DecodeJSON(w, r, &settings); err != nil {
		h.fail(w, r, err)
		return
	}
	saved, err := h.service.SaveSettings(r.Context(), settings)
	h.respond(w, r, http.StatusOK, saved, err)
}

// ============================================================================
// HELPERS
// ============================================================================

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, body any, err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, status, body)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warn("booking request failed", slog.String("method", r.Method), slog.String("path", r.URL.Path), slog.Any("error", err))
	httpx.RespondError(w, classify(err))
}

// classify maps domain sentinels onto the HTTP error kinds.
func classify(err error) error {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		return httpx.Classify(httpx.ErrNotFound, err)
	case errors.Is(err, booking.ErrAlreadyExists):
		return httpx.Classify(httpx.ErrDuplicate, err)
	case errors.Is(err, booking.ErrInvalidStatus):
		return httpx.Classify(httpx.ErrConflict, err)
	case errors.Is(err, booking.ErrValidation):
		return httpx.Classify(httpx.ErrValidation, err)
	}
	return err
}
