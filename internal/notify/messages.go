// Package notify composes customer-facing messages and delivers them.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/drapebook/drapebook/internal/booking"
)

// Composer renders message text for one business.
type Composer struct {
	profile booking.BusinessProfile
	phones  booking.PhoneCanonicalizer
	printer *message.Printer
}

// NewComposer builds a composer. Amounts are grouped per the given locale (en-IN when empty).
func NewComposer(profile booking.BusinessProfile, phones booking.PhoneCanonicalizer, locale string) *Composer {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.MustParse("en-IN")
	}
	return &Composer{profile: profile, phones: phones, printer: message.NewPrinter(tag)}
}

func (c *Composer) amount(v float64) string {
	return c.printer.Sprintf("Rs. %.2f", v)
}

func (c *Composer) signature() string {
	name := c.profile.BusinessName
	if name == "" {
		name = "Saree Draping Studio"
	}
	if c.profile.Phone != "" {
		return fmt.Sprintf("- %s (%s)", name, c.profile.Phone)
	}
	return "- " + name
}

// OrderConfirmation summarises a booked order.
func (c *Composer) OrderConfirmation(o booking.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s, your booking is confirmed.\n", o.CustomerName)
	fmt.Fprintf(&b, "Service: %s x %d saree(s), %s\n", o.ServiceType, o.SareeCount, o.Location)
	if o.EventDate != "" {
		fmt.Fprintf(&b, "Event date: %s\n", o.EventDate)
	}
	fmt.Fprintf(&b, "Total: %s\n", c.amount(o.TotalAmount))
	if o.AmountPaid > 0 {
		fmt.Fprintf(&b, "Paid: %s\n", c.amount(o.AmountPaid))
	}
	fmt.Fprintf(&b, "Balance: %s\n", c.amount(o.Balance()))
	b.WriteString(c.signature())
	return b.String()
}

// PaymentReceipt acknowledges one ledger entry.
func (c *Composer) PaymentReceipt(o booking.Order, p booking.Payment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s, we received %s by %s on %s.\n", o.CustomerName, c.amount(p.Amount), p.Mode, p.Date)
	fmt.Fprintf(&b, "Paid so far: %s of %s. Balance: %s\n", c.amount(o.AmountPaid), c.amount(o.TotalAmount), c.amount(o.Balance()))
	b.WriteString(c.signature())
	return b.String()
}

// EnquiryAcknowledgement replies to a new enquiry.
func (c *Composer) EnquiryAcknowledgement(e booking.Enquiry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s, thank you for your enquiry for %s (%d saree(s))", e.CustomerName, e.ServiceType, e.SareeCount)
	if e.EventDate != "" {
		fmt.Fprintf(&b, " on %s", e.EventDate)
	}
	b.WriteString(". We will get back to you shortly.\n")
	b.WriteString(c.signature())
	return b.String()
}

// InternationalNumber returns the digits to dial from abroad, country code included.
func (c *Composer) InternationalNumber(phone string) string {
	local := c.phones.Canonical(phone)
	if local == "" {
		return ""
	}
	if len(local) == 10 && c.phones.CountryCode != "" {
		return c.phones.CountryCode + local
	}
	return local
}

// ShareLink builds a wa.me link that opens a chat prefilled with text.
func (c *Composer) ShareLink(phone, text string) (string, error) {
	number := c.InternationalNumber(phone)
	if number == "" {
		return "", fmt.Errorf("%w: phone must contain digits", booking.ErrValidation)
	}
	u := url.URL{Scheme: "https", Host: "wa.me", Path: "/" + number}
	q := url.Values{}
	q.Set("text", text)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
