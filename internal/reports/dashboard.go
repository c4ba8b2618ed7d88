// Package reports derives dashboard counts, monthly statistics and customer reports from the
// booking collections.
package reports

import (
	"time"

	"github.com/drapebook/drapebook/internal/booking"
	"github.com/drapebook/drapebook/internal/calendar"
)

// Dashboard holds the five notification sets for one day.
type Dashboard struct {
	Date               string            `json:"date"`
	TodayEvents        []booking.Order   `json:"todayEvents"`
	TomorrowEvents     []booking.Order   `json:"tomorrowEvents"`
	PendingPayments    []booking.Order   `json:"pendingPayments"`
	NewEnquiries       []booking.Enquiry `json:"newEnquiries"`
	OverdueCollections []booking.Order   `json:"overdueCollections"`
	TotalNotifications int               `json:"totalNotifications"`
}

// BuildDashboard computes the notification sets as of today. An order may appear in several
// sets and is counted once per set.
func BuildDashboard(orders []booking.Order, enquiries []booking.Enquiry, today time.Time) Dashboard {
	todayKey := calendar.DateKey(today)
	tomorrowKey := calendar.DateKey(today.AddDate(0, 0, 1))

	d := Dashboard{
		Date:               todayKey,
		TodayEvents:        []booking.Order{},
		TomorrowEvents:     []booking.Order{},
		PendingPayments:    []booking.Order{},
		NewEnquiries:       []booking.Enquiry{},
		OverdueCollections: []booking.Order{},
	}
	for _, o := range orders {
		switch calendar.NormalizeDate(o.EventDate) {
		case todayKey:
			d.TodayEvents = append(d.TodayEvents, o)
		case tomorrowKey:
			d.TomorrowEvents = append(d.TomorrowEvents, o)
		}
		if o.TotalAmount > o.AmountPaid {
			d.PendingPayments = append(d.PendingPayments, o)
		}
		if isOverdue(o, todayKey) {
			d.OverdueCollections = append(d.OverdueCollections, o)
		}
	}
	for _, e := range enquiries {
		if e.Status == booking.EnquiryStatusNew {
			d.NewEnquiries = append(d.NewEnquiries, e)
		}
	}
	d.TotalNotifications = len(d.TodayEvents) + len(d.TomorrowEvents) + len(d.PendingPayments) +
		len(d.NewEnquiries) + len(d.OverdueCollections)
	return d
}

func isOverdue(o booking.Order, todayKey string) bool {
	collection := calendar.NormalizeDate(o.CollectionDate)
	if collection == "" || collection >= todayKey {
		return false
	}
	return o.Status != booking.OrderStatusDelivered && o.Status != booking.OrderStatusCompleted
}
