package reports

import (
	"strings"
	"time"

	"github.com/drapebook/drapebook/internal/booking"
	"github.com/drapebook/drapebook/internal/calendar"
)

// MonthlyStats summarises the orders whose event falls in one month.
type MonthlyStats struct {
	Year        int        `json:"year"`
	Month       time.Month `json:"month"`
	TotalOrders int        `json:"totalOrders"`

	PrePleat int `json:"prePleat"`
	Drape    int `json:"drape"`
	Both     int `json:"both"`

	Revenue float64 `json:"revenue"`
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`

	Completed int `json:"completed"`
	Waiting   int `json:"pendingOrders"`
	Confirmed int `json:"confirmed"`
}

// BuildMonthlyStats aggregates orders with an eventDate inside year/month.
func BuildMonthlyStats(orders []booking.Order, year int, month time.Month) MonthlyStats {
	stats := MonthlyStats{Year: year, Month: month}
	prefix := calendar.DateKey(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))[:7]

	for _, o := range orders {
		date := calendar.NormalizeDate(o.EventDate)
		if !strings.HasPrefix(date, prefix) {
			continue
		}
		stats.TotalOrders++

		kind := strings.ToLower(string(o.ServiceType))
		switch {
		case strings.Contains(kind, "both"):
			stats.Both++
		case strings.Contains(kind, "pleat"):
			stats.PrePleat++
		case strings.Contains(kind, "drape"):
			stats.Drape++
		}

		stats.Revenue += o.TotalAmount
		stats.Paid += o.AmountPaid
		if balance := o.Balance(); balance > 0 {
			stats.Pending += balance
		}

		switch o.Status {
		case booking.OrderStatusCompleted, booking.OrderStatusDelivered:
			stats.Completed++
		case booking.OrderStatusPending:
			stats.Waiting++
		case booking.OrderStatusReceived, booking.OrderStatusInProgress:
			stats.Confirmed++
		}
	}
	return stats
}
