package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/drapebook/drapebook/internal/booking"
)

// DateKey formats the local calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// NormalizeDate reduces a stored date to its YYYY-MM-DD prefix. Full timestamps are
// accepted; anything unparseable normalises to "" and never matches a day.
func NormalizeDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if len(value) >= len(booking.DateLayout) {
		if _, err := time.Parse(booking.DateLayout, value[:len(booking.DateLayout)]); err == nil {
			return value[:len(booking.DateLayout)]
		}
	}
	return ""
}

// Populate returns a copy of weeks whose day lists hold the bookings scheduled on that day.
// Existing day lists are replaced, so repeated calls give the same result.
func Populate(weeks []Week, orders []booking.Order, enquiries []booking.Enquiry) []Week {
	ordersByDay := make(map[string][]booking.Order)
	for _, o := range orders {
		if key := NormalizeDate(o.EventDate); key != "" {
			ordersByDay[key] = append(ordersByDay[key], o)
		}
	}
	enquiriesByDay := make(map[string][]booking.Enquiry)
	for _, e := range enquiries {
		if key := NormalizeDate(e.EventDate); key != "" {
			enquiriesByDay[key] = append(enquiriesByDay[key], e)
		}
	}

	out := make([]Week, len(weeks))
	for w, week := range weeks {
		for d, day := range week {
			key := DateKey(day.Date)
			day.Orders = append([]booking.Order{}, ordersByDay[key]...)
			day.Enquiries = append([]booking.Enquiry{}, enquiriesByDay[key]...)
			out[w][d] = day
		}
	}
	return out
}
