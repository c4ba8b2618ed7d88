package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrAlreadyExists = errors.New("record already exists")

// Repository loads whole collections and opens atomic write scopes.
type Repository interface {
	LoadOrders(ctx context.Context) ([]Order, error)
	LoadEnquiries(ctx context.Context) ([]Enquiry, error)
	LoadCustomers(ctx context.Context) ([]Customer, error)
	LoadSettings(ctx context.Context) (Settings, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository replaces whole collections. Writes become visible together on commit.
type TxRepository interface {
	SaveOrders(ctx context.Context, orders []Order) error
	SaveEnquiries(ctx context.Context, enquiries []Enquiry) error
	SaveCustomers(ctx context.Context, customers []Customer) error
	SaveSettings(ctx context.Context, settings Settings) error
}

// Invalidator drops derived data after a committed mutation.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// EventRecorder counts booking mutations.
type EventRecorder interface {
	RecordBookingEvent(event string)
}

// ServiceConfig carries optional collaborators.
type ServiceConfig struct {
	Phones      PhoneCanonicalizer
	Invalidator Invalidator
	Events      EventRecorder
	Logger      *slog.Logger
	Clock       func() time.Time
}

// Service applies booking mutations. One mutation runs to completion before the next starts.
type Service struct {
	repo        Repository
	phones      PhoneCanonicalizer
	invalidator Invalidator
	events      EventRecorder
	logger      *slog.Logger
	clock       func() time.Time
	mu          sync.Mutex
}

// NewService constructs a booking service.
func NewService(repo Repository, cfg ServiceConfig) *Service {
	s := &Service{
		repo:        repo,
		phones:      cfg.Phones,
		invalidator: cfg.Invalidator,
		events:      cfg.Events,
		logger:      cfg.Logger,
		clock:       cfg.Clock,
	}
	if s.phones.CountryCode == "" {
		s.phones = DefaultPhones
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s
}

// Phones exposes the canonicalizer used for customer correlation.
func (s *Service) Phones() PhoneCanonicalizer {
	return s.phones
}

// ============================================================================
// READS
// ============================================================================

func (s *Service) ListOrders(ctx context.Context) ([]Order, error) {
	return s.repo.LoadOrders(ctx)
}

func (s *Service) GetOrder(ctx context.Context, id string) (*Order, error) {
	orders, err := s.repo.LoadOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	idx := indexOrder(orders, id)
	if idx < 0 {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return &orders[idx], nil
}

func (s *Service) ListEnquiries(ctx context.Context) ([]Enquiry, error) {
	return s.repo.LoadEnquiries(ctx)
}

func (s *Service) GetEnquiry(ctx context.Context, id string) (*Enquiry, error) {
	enquiries, err := s.repo.LoadEnquiries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load enquiries: %w", err)
	}
	idx := indexEnquiry(enquiries, id)
	if idx < 0 {
		return nil, fmt.Errorf("enquiry %s: %w", id, ErrNotFound)
	}
	return &enquiries[idx], nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]Customer, error) {
	return s.repo.LoadCustomers(ctx)
}

// FindCustomerByPhone reports a miss with ok=false rather than an error.
func (s *Service) FindCustomerByPhone(ctx context.Context, phone string) (Customer, bool, error) {
	customers, err := s.repo.LoadCustomers(ctx)
	if err != nil {
		return Customer{}, false, fmt.Errorf("load customers: %w", err)
	}
	c, ok := s.phones.Match(phone, customers)
	return c, ok, nil
}

func (s *Service) GetSettings(ctx context.Context) (Settings, error) {
	return s.repo.LoadSettings(ctx)
}

// ============================================================================
// CUSTOMER OPERATIONS
// ============================================================================

// CreateCustomer adds a customer. Phones are unique after canonicalisation.
func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if s.phones.Canonical(req.Phone) == "" {
		return nil, validationError("phone must contain digits")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.repo.LoadCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	if _, ok := s.phones.Match(req.Phone, customers); ok {
		return nil, fmt.Errorf("%w: customer with phone %s", ErrAlreadyExists, req.Phone)
	}
	c := Customer{
		ID:                   uuid.NewString(),
		Name:                 strings.TrimSpace(req.Name),
		Phone:                strings.TrimSpace(req.Phone),
		PermanentAddress:     strings.TrimSpace(req.PermanentAddress),
		CreatedAt:            s.clock(),
		ReferralSource:       req.ReferralSource,
		ReferredByCustomerID: req.ReferredByCustomerID,
		MakeupArtistDetails:  req.MakeupArtistDetails,
	}
	next := append(slices.Clone(customers), c)
	err = s.commit(ctx, "customer.created", func(ctx context.Context, tx TxRepository) error {
		return tx.SaveCustomers(ctx, next)
	})
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &c, nil
}

// ============================================================================
// ORDER OPERATIONS
// ============================================================================

// CreateOrder records a new order. An unknown phone creates its customer in the same write.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := checkCharges(req.AdditionalCharges); err != nil {
		return nil, err
	}
	if s.phones.Canonical(req.Phone) == "" {
		return nil, validationError("phone must contain digits")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.repo.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	customers, err := s.repo.LoadCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	orders, err := s.repo.LoadOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	now := s.clock()
	customer, existing := s.phones.Match(req.Phone, customers)
	if existing {
		if strings.TrimSpace(req.CustomerName) == "" {
			req.CustomerName = customer.Name
		}
		if strings.TrimSpace(req.Address) == "" {
			req.Address = customer.PermanentAddress
		}
	} else {
		if strings.TrimSpace(req.CustomerName) == "" {
			return nil, validationError("customer name is required for a new customer")
		}
		permanent := strings.TrimSpace(req.PermanentAddress)
		if permanent == "" {
			permanent = strings.TrimSpace(req.Address)
		}
		customer = Customer{
			ID:                   uuid.NewString(),
			Name:                 strings.TrimSpace(req.CustomerName),
			Phone:                strings.TrimSpace(req.Phone),
			PermanentAddress:     permanent,
			CreatedAt:            now,
			ReferralSource:       req.ReferralSource,
			ReferredByCustomerID: req.ReferredByCustomerID,
			MakeupArtistDetails:  req.MakeupArtistDetails,
		}
	}

	status := req.Status
	if status == "" {
		status = OrderStatusPending
	}
	charges := slices.Clone(req.AdditionalCharges)
	if charges == nil {
		charges = []Charge{}
	}
	order := Order{
		ID:                     uuid.NewString(),
		CustomerID:             customer.ID,
		CustomerName:           strings.TrimSpace(req.CustomerName),
		Phone:                  strings.TrimSpace(req.Phone),
		Address:                strings.TrimSpace(req.Address),
		ServiceType:            req.ServiceType,
		Location:               req.Location,
		GPS:                    req.GPS,
		FunctionType:           req.FunctionType,
		PleatType:              req.PleatType,
		SareeCount:             req.SareeCount,
		SareeReceivedInAdvance: req.SareeReceivedInAdvance,
		SareeReceivedDate:      req.SareeReceivedDate,
		EventDate:              req.EventDate,
		DeliveryDate:           req.DeliveryDate,
		CollectionDate:         req.CollectionDate,
		AdditionalCharges:      charges,
		Payments:               []Payment{},
		Status:                 status,
		Notes:                  req.Notes,
		ReferralSource:         req.ReferralSource,
		ReferredByCustomerID:   req.ReferredByCustomerID,
		MakeupArtistDetails:    req.MakeupArtistDetails,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := order.Reprice(settings.Rates); err != nil {
		return nil, err
	}
	if req.Advance > 0 {
		mode := req.AdvanceMode
		if mode == "" {
			mode = PaymentModeAdvance
		}
		if _, err := AddPayment(&order, PaymentInput{Amount: req.Advance, Mode: mode, Note: "advance"}, now); err != nil {
			return nil, err
		}
	}

	nextOrders := append(slices.Clone(orders), order)
	err = s.commit(ctx, "order.created", func(ctx context.Context, tx TxRepository) error {
		if !existing {
			if err := tx.SaveCustomers(ctx, append(slices.Clone(customers), customer)); err != nil {
				return fmt.Errorf("save customers: %w", err)
			}
		}
		if err := tx.SaveOrders(ctx, nextOrders); err != nil {
			return fmt.Errorf("save orders: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.logger.Info("order created", slog.String("order_id", order.ID), slog.Bool("new_customer", !existing))
	return &order, nil
}

// UpdateOrder applies an edit. Totals are recomputed with the current rates only when a
// pricing input changes, so a rate change never silently alters an untouched order.
func (s *Service) UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.AdditionalCharges != nil {
		if err := checkCharges(*req.AdditionalCharges); err != nil {
			return nil, err
		}
	}
	return s.mutateOrder(ctx, id, "order.updated", func(o *Order, rates Rates) error {
		if req.CustomerName != nil {
			o.CustomerName = strings.TrimSpace(*req.CustomerName)
		}
		if req.Address != nil {
			o.Address = strings.TrimSpace(*req.Address)
		}
		if req.Location != nil {
			o.Location = *req.Location
		}
		if req.GPS != nil {
			o.GPS = *req.GPS
		}
		if req.FunctionType != nil {
			o.FunctionType = *req.FunctionType
		}
		if req.PleatType != nil {
			o.PleatType = *req.PleatType
		}
		if req.SareeReceivedInAdvance != nil {
			o.SareeReceivedInAdvance = *req.SareeReceivedInAdvance
		}
		if req.SareeReceivedDate != nil {
			o.SareeReceivedDate = *req.SareeReceivedDate
		}
		if req.EventDate != nil {
			o.EventDate = *req.EventDate
		}
		if req.DeliveryDate != nil {
			o.DeliveryDate = *req.DeliveryDate
		}
		if req.CollectionDate != nil {
			o.CollectionDate = *req.CollectionDate
		}
		if req.Status != nil {
			o.Status = *req.Status
		}
		if req.Notes != nil {
			o.Notes = *req.Notes
		}

		repriced := false
		if req.ServiceType != nil {
			o.ServiceType = *req.ServiceType
			repriced = true
		}
		if req.SareeCount != nil {
			o.SareeCount = *req.SareeCount
			repriced = true
		}
		if req.AdditionalCharges != nil {
			o.AdditionalCharges = slices.Clone(*req.AdditionalCharges)
			if o.AdditionalCharges == nil {
				o.AdditionalCharges = []Charge{}
			}
			repriced = true
		}
		if repriced {
			return o.Reprice(rates)
		}
		return nil
	})
}

// SetOrderStatus moves an order to any status.
func (s *Service) SetOrderStatus(ctx context.Context, id string, status OrderStatus) (*Order, error) {
	if err := validate.Var(string(status), "required,oneof=pending received in-progress completed delivered"); err != nil {
		return nil, validationError("unknown order status %q", status)
	}
	return s.mutateOrder(ctx, id, "order.status", func(o *Order, _ Rates) error {
		o.Status = status
		return nil
	})
}

// AddPayment records a payment on an order.
func (s *Service) AddPayment(ctx context.Context, id string, in PaymentInput) (*Order, error) {
	return s.mutateOrder(ctx, id, "payment.added", func(o *Order, _ Rates) error {
		_, err := AddPayment(o, in, s.clock())
		return err
	})
}

// RemovePayment deletes a ledger entry.
func (s *Service) RemovePayment(ctx context.Context, id, paymentID string) (*Order, error) {
	return s.mutateOrder(ctx, id, "payment.removed", func(o *Order, _ Rates) error {
		if err := RemovePayment(o, paymentID); err != nil {
			return fmt.Errorf("payment %s: %w", paymentID, err)
		}
		return nil
	})
}

// AddCharge parses and appends an additional charge, then reprices.
func (s *Service) AddCharge(ctx context.Context, id string, req ChargeRequest) (*Order, error) {
	charge, err := NewCharge(req.Name, req.Amount)
	if err != nil {
		return nil, err
	}
	return s.mutateOrder(ctx, id, "charge.added", func(o *Order, rates Rates) error {
		return o.AddCharge(charge, rates)
	})
}

// RemoveCharge deletes the charge at index, then reprices.
func (s *Service) RemoveCharge(ctx context.Context, id string, index int) (*Order, error) {
	return s.mutateOrder(ctx, id, "charge.removed", func(o *Order, rates Rates) error {
		return o.RemoveCharge(index, rates)
	})
}

// DeleteOrder removes an order.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.LoadOrders(ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	idx := indexOrder(orders, id)
	if idx < 0 {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	next := slices.Delete(slices.Clone(orders), idx, idx+1)
	return s.commit(ctx, "order.deleted", func(ctx context.Context, tx TxRepository) error {
		return tx.SaveOrders(ctx, next)
	})
}

func (s *Service) mutateOrder(ctx context.Context, id, event string, fn func(*Order, Rates) error) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.repo.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	orders, err := s.repo.LoadOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	idx := indexOrder(orders, id)
	if idx < 0 {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	next := slices.Clone(orders)
	order := next[idx]
	order.AdditionalCharges = slices.Clone(order.AdditionalCharges)
	order.Payments = slices.Clone(order.Payments)
	if err := fn(&order, settings.Rates); err != nil {
		return nil, err
	}
	order.UpdatedAt = s.clock()
	next[idx] = order

	err = s.commit(ctx, event, func(ctx context.Context, tx TxRepository) error {
		return tx.SaveOrders(ctx, next)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", event, err)
	}
	return &order, nil
}

// ============================================================================
// ENQUIRY OPERATIONS
// ============================================================================

// CreateEnquiry records a new enquiry. An unknown phone creates its customer in the same write.
func (s *Service) CreateEnquiry(ctx context.Context, req CreateEnquiryRequest) (*Enquiry, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if s.phones.Canonical(req.Phone) == "" {
		return nil, validationError("phone must contain digits")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.repo.LoadCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	enquiries, err := s.repo.LoadEnquiries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load enquiries: %w", err)
	}

	now := s.clock()
	customer, existing := s.phones.Match(req.Phone, customers)
	if existing {
		if strings.TrimSpace(req.CustomerName) == "" {
			req.CustomerName = customer.Name
		}
	} else {
		if strings.TrimSpace(req.CustomerName) == "" {
			return nil, validationError("customer name is required for a new customer")
		}
		customer = Customer{
			ID:                   uuid.NewString(),
			Name:                 strings.TrimSpace(req.CustomerName),
			Phone:                strings.TrimSpace(req.Phone),
			CreatedAt:            now,
			ReferralSource:       req.ReferralSource,
			ReferredByCustomerID: req.ReferredByCustomerID,
			MakeupArtistDetails:  req.MakeupArtistDetails,
		}
	}

	enquiry := Enquiry{
		ID:           uuid.NewString(),
		CustomerID:   customer.ID,
		CustomerName: strings.TrimSpace(req.CustomerName),
		Phone:        strings.TrimSpace(req.Phone),
		ServiceType:  req.ServiceType,
		Location:     req.Location,
		GPS:          req.GPS,
		EventDate:    req.EventDate,
		FunctionType: req.FunctionType,
		PleatType:    req.PleatType,
		SareeCount:   req.SareeCount,
		Notes:        req.Notes,
		Status:       EnquiryStatusNew,
		CreatedAt:    now,
	}

	nextEnquiries := append(slices.Clone(enquiries), enquiry)
	err = s.commit(ctx, "enquiry.created", func(ctx context.Context, tx TxRepository) error {
		if !existing {
			if err := tx.SaveCustomers(ctx, append(slices.Clone(customers), customer)); err != nil {
				return fmt.Errorf("save customers: %w", err)
			}
		}
		if err := tx.SaveEnquiries(ctx, nextEnquiries); err != nil {
			return fmt.Errorf("save enquiries: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create enquiry: %w", err)
	}
	return &enquiry, nil
}

// UpdateEnquiry applies an explicit edit. Converted enquiries are frozen.
func (s *Service) UpdateEnquiry(ctx context.Context, id string, req UpdateEnquiryRequest) (*Enquiry, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.mutateEnquiry(ctx, id, "enquiry.updated", func(e *Enquiry) error {
		if req.CustomerName != nil {
			e.CustomerName = strings.TrimSpace(*req.CustomerName)
		}
		if req.ServiceType != nil {
			e.ServiceType = *req.ServiceType
		}
		if req.Location != nil {
			e.Location = *req.Location
		}
		if req.GPS != nil {
			e.GPS = *req.GPS
		}
		if req.EventDate != nil {
			e.EventDate = *req.EventDate
		}
		if req.FunctionType != nil {
			e.FunctionType = *req.FunctionType
		}
		if req.PleatType != nil {
			e.PleatType = *req.PleatType
		}
		if req.SareeCount != nil {
			e.SareeCount = *req.SareeCount
		}
		if req.Notes != nil {
			e.Notes = *req.Notes
		}
		if req.Status != nil {
			e.Status = *req.Status
		}
		return nil
	})
}

// SetEnquiryStatus moves an enquiry between new, follow-up and cancelled.
func (s *Service) SetEnquiryStatus(ctx context.Context, id string, status EnquiryStatus) (*Enquiry, error) {
	if err := validate.Var(string(status), "required,oneof=new follow-up cancelled"); err != nil {
		return nil, fmt.Errorf("%w: enquiry status %q cannot be set directly", ErrInvalidStatus, status)
	}
	return s.mutateEnquiry(ctx, id, "enquiry.status", func(e *Enquiry) error {
		e.Status = status
		return nil
	})
}

// DeleteEnquiry removes an enquiry.
func (s *Service) DeleteEnquiry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enquiries, err := s.repo.LoadEnquiries(ctx)
	if err != nil {
		return fmt.Errorf("load enquiries: %w", err)
	}
	idx := indexEnquiry(enquiries, id)
	if idx < 0 {
		return fmt.Errorf("enquiry %s: %w", id, ErrNotFound)
	}
	next := slices.Delete(slices.Clone(enquiries), idx, idx+1)
	return s.commit(ctx, "enquiry.deleted", func(ctx context.Context, tx TxRepository) error {
		return tx.SaveEnquiries(ctx, next)
	})
}

// ConvertEnquiry creates an order from an enquiry and marks the enquiry converted.
// Both collections are written in one transaction.
func (s *Service) ConvertEnquiry(ctx context.Context, id string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.repo.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	enquiries, err := s.repo.LoadEnquiries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load enquiries: %w", err)
	}
	orders, err := s.repo.LoadOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	idx := indexEnquiry(enquiries, id)
	if idx < 0 {
		return nil, fmt.Errorf("enquiry %s: %w", id, ErrNotFound)
	}

	order, err := ConvertEnquiry(enquiries[idx], settings.Rates, s.clock())
	if err != nil {
		return nil, err
	}
	nextEnquiries, err := MarkConverted(enquiries, id)
	if err != nil {
		return nil, err
	}
	nextOrders := append(slices.Clone(orders), order)

	err = s.commit(ctx, "enquiry.converted", func(ctx context.Context, tx TxRepository) error {
		if err := tx.SaveOrders(ctx, nextOrders); err != nil {
			return fmt.Errorf("save orders: %w", err)
		}
		if err := tx.SaveEnquiries(ctx, nextEnquiries); err != nil {
			return fmt.Errorf("save enquiries: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("convert enquiry: %w", err)
	}
	s.logger.Info("enquiry converted", slog.String("enquiry_id", id), slog.String("order_id", order.ID))
	return &order, nil
}

func (s *Service) mutateEnquiry(ctx context.Context, id, event string, fn func(*Enquiry) error) (*Enquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	enquiries, err := s.repo.LoadEnquiries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load enquiries: %w", err)
	}
	idx := indexEnquiry(enquiries, id)
	if idx < 0 {
		return nil, fmt.Errorf("enquiry %s: %w", id, ErrNotFound)
	}
	if enquiries[idx].Status == EnquiryStatusConverted {
		return nil, fmt.Errorf("%w: enquiry %s is converted", ErrInvalidStatus, id)
	}
	next := slices.Clone(enquiries)
	enquiry := next[idx]
	if err := fn(&enquiry); err != nil {
		return nil, err
	}
	next[idx] = enquiry

	err = s.commit(ctx, event, func(ctx context.Context, tx TxRepository) error {
		return tx.SaveEnquiries(ctx, next)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", event, err)
	}
	return &enquiry, nil
}

// ============================================================================
// SETTINGS
// ============================================================================

// SaveSettings replaces the settings record. Saved orders keep their stored totals.
func (s *Service) SaveSettings(ctx context.Context, settings Settings) (Settings, error) {
	if err := validateStruct(settings); err != nil {
		return Settings{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.commit(ctx, "settings.saved", func(ctx context.Context, tx TxRepository) error {
		return tx.SaveSettings(ctx, settings)
	})
	if err != nil {
		return Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

// ============================================================================
// HELPERS
// ============================================================================

func (s *Service) commit(ctx context.Context, event string, fn func(context.Context, TxRepository) error) error {
	if err := s.repo.WithTx(ctx, fn); err != nil {
		return err
	}
	if s.invalidator != nil {
		if err := s.invalidator.Bump(ctx); err != nil {
			s.logger.Warn("invalidate derived data", slog.String("event", event), slog.Any("error", err))
		}
	}
	if s.events != nil {
		s.events.RecordBookingEvent(event)
	}
	return nil
}

func indexOrder(orders []Order, id string) int {
	return slices.IndexFunc(orders, func(o Order) bool { return o.ID == id })
}

func indexEnquiry(enquiries []Enquiry, id string) int {
	return slices.IndexFunc(enquiries, func(e Enquiry) bool { return e.ID == id })
}
