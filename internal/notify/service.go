package notify

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/drapebook/drapebook/internal/booking"
)

// Kind names a message template.
type Kind string

const (
	KindOrderConfirmation Kind = "order-confirmation"
	KindPaymentReceipt    Kind = "payment-receipt"
	KindEnquiryAck        Kind = "enquiry-ack"
)

// Bookings is the read side of the booking service.
type Bookings interface {
	GetOrder(ctx context.Context, id string) (*booking.Order, error)
	GetEnquiry(ctx context.Context, id string) (*booking.Enquiry, error)
	GetSettings(ctx context.Context) (booking.Settings, error)
	Phones() booking.PhoneCanonicalizer
}

// Share is a composed message with its chat link.
type Share struct {
	Kind Kind   `json:"kind"`
	To   string `json:"to"`
	Text string `json:"text"`
	Link string `json:"link"`
}

// Service composes and optionally delivers customer messages.
type Service struct {
	bookings Bookings
	sender   Sender
	locale   string
	logger   *slog.Logger
}

// NewService wires the collaborators. A nil sender logs instead of delivering.
func NewService(bookings Bookings, sender Sender, locale string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sender == nil {
		sender = LogSender{Logger: logger}
	}
	return &Service{bookings: bookings, sender: sender, locale: locale, logger: logger}
}

func (s *Service) composer(ctx context.Context) (*Composer, error) {
	settings, err := s.bookings.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return NewComposer(settings.Profile, s.bookings.Phones(), s.locale), nil
}

// OrderShare composes the confirmation for an order. When paymentID is set the payment
// receipt is composed instead.
func (s *Service) OrderShare(ctx context.Context, orderID, paymentID string) (Share, error) {
	order, err := s.bookings.GetOrder(ctx, orderID)
	if err != nil {
		return Share{}, err
	}
	c, err := s.composer(ctx)
	if err != nil {
		return Share{}, err
	}
	share := Share{Kind: KindOrderConfirmation, To: order.Phone, Text: c.OrderConfirmation(*order)}
	if paymentID != "" {
		idx := slices.IndexFunc(order.Payments, func(p booking.Payment) bool { return p.ID == paymentID })
		if idx < 0 {
			return Share{}, fmt.Errorf("payment %s: %w", paymentID, booking.ErrNotFound)
		}
		share.Kind = KindPaymentReceipt
		share.Text = c.PaymentReceipt(*order, order.Payments[idx])
	}
	share.Link, err = c.ShareLink(order.Phone, share.Text)
	if err != nil {
		return Share{}, err
	}
	return share, nil
}

// EnquiryShare composes the acknowledgement for an enquiry.
func (s *Service) EnquiryShare(ctx context.Context, enquiryID string) (Share, error) {
	enquiry, err := s.bookings.GetEnquiry(ctx, enquiryID)
	if err != nil {
		return Share{}, err
	}
	c, err := s.composer(ctx)
	if err != nil {
		return Share{}, err
	}
	share := Share{Kind: KindEnquiryAck, To: enquiry.Phone, Text: c.EnquiryAcknowledgement(*enquiry)}
	share.Link, err = c.ShareLink(enquiry.Phone, share.Text)
	if err != nil {
		return Share{}, err
	}
	return share, nil
}

// Deliver sends a composed share over channel and returns the provider reference.
func (s *Service) Deliver(ctx context.Context, share Share, channel Channel) (string, error) {
	if channel == "" {
		channel = ChannelWhatsApp
	}
	number := NewComposer(booking.BusinessProfile{}, s.bookings.Phones(), s.locale).InternationalNumber(share.To)
	if number == "" {
		return "", fmt.Errorf("%w: phone must contain digits", booking.ErrValidation)
	}
	ref, err := s.sender.Send(ctx, Message{To: "+" + number, Body: share.Text, Channel: channel})
	if err != nil {
		return "", err
	}
	s.logger.Info("message delivered", slog.String("kind", string(share.Kind)), slog.String("channel", string(channel)))
	return ref, nil
}
