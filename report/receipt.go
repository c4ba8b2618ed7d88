package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/drapebook/drapebook/internal/booking"
)

var receiptTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Receipt {{.Order.ID}}</title>
<style>
body { font-family: sans-serif; margin: 32px; color: #222; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
th, td { text-align: left; padding: 6px; border-bottom: 1px solid #ddd; }
td.amount, th.amount { text-align: right; }
</style></head>
<body>
<h1>{{.Profile.BusinessName}}</h1>
<p>{{.Profile.Address}}{{if .Profile.Phone}} &middot; {{.Profile.Phone}}{{end}}</p>
<h2>Receipt</h2>
<p>{{.Order.CustomerName}} &middot; {{.Order.Phone}}<br>
Event date: {{.Order.EventDate}}<br>
Generated: {{.GeneratedAt.Format "2006-01-02 15:04"}}</p>
<table>
<tr><th>Item</th><th class="amount">Amount</th></tr>
<tr><td>{{.Order.ServiceType}} &times; {{.Order.SareeCount}}</td><td class="amount">{{money .Order.BaseAmount}}</td></tr>
{{range .Order.AdditionalCharges}}<tr><td>{{.Name}}</td><td class="amount">{{money .Amount}}</td></tr>
{{end}}<tr><th>Total</th><th class="amount">{{money .Order.TotalAmount}}</th></tr>
</table>
<table>
<tr><th>Date</th><th>Mode</th><th class="amount">Paid</th></tr>
{{range .Order.Payments}}<tr><td>{{.Date}}</td><td>{{.Mode}}</td><td class="amount">{{money .Amount}}</td></tr>
{{end}}<tr><th colspan="2">Balance</th><th class="amount">{{money .Balance}}</th></tr>
</table>
</body></html>
`))

type receiptView struct {
	Profile     booking.BusinessProfile
	Order       booking.Order
	Balance     float64
	GeneratedAt time.Time
}

// ReceiptHTML renders the printable receipt for an order.
func ReceiptHTML(profile booking.BusinessProfile, order booking.Order, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	view := receiptView{Profile: profile, Order: order, Balance: order.Balance(), GeneratedAt: now}
	if err := receiptTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("report: render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// Renderer turns HTML into a PDF.
type Renderer interface {
	RenderHTML(ctx context.Context, html []byte) ([]byte, error)
}

// ReceiptPDF renders the receipt HTML and converts it with r.
func ReceiptPDF(ctx context.Context, r Renderer, profile booking.BusinessProfile, order booking.Order, now time.Time) ([]byte, error) {
	html, err := ReceiptHTML(profile, order, now)
	if err != nil {
		return nil, err
	}
	pdf, err := r.RenderHTML(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("report: convert receipt: %w", err)
	}
	return pdf, nil
}

// OrderSource loads orders and the business profile for receipts.
type OrderSource interface {
	GetOrder(ctx context.Context, id string) (*booking.Order, error)
	GetSettings(ctx context.Context) (booking.Settings, error)
}

// Receipts renders receipts for stored orders.
type Receipts struct {
	source   OrderSource
	renderer Renderer
	clock    func() time.Time
}

// NewReceipts builds a receipt renderer backed by source.
func NewReceipts(source OrderSource, renderer Renderer, clock func() time.Time) *Receipts {
	if clock == nil {
		clock = time.Now
	}
	return &Receipts{source: source, renderer: renderer, clock: clock}
}

// Receipt returns the PDF receipt for orderID.
func (r *Receipts) Receipt(ctx context.Context, orderID string) ([]byte, error) {
	order, err := r.source.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	settings, err := r.source.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return ReceiptPDF(ctx, r.renderer, settings.Profile, *order, r.clock())
}
