// Package export renders the order list as flat CSV or XLSX tables.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/drapebook/drapebook/internal/booking"
)

// OrderColumns is the header row shared by every order export.
var OrderColumns = []string{"Customer", "Phone", "Service", "Location", "Sarees", "Event Date", "Total", "Paid", "Balance", "Status"}

func orderRecord(o booking.Order) []string {
	return []string{
		o.CustomerName,
		o.Phone,
		string(o.ServiceType),
		string(o.Location),
		strconv.Itoa(o.SareeCount),
		o.EventDate,
		formatFloat(o.TotalAmount),
		formatFloat(o.AmountPaid),
		formatFloat(o.Balance()),
		string(o.Status),
	}
}

// WriteOrdersCSV writes one row per order under the standard header.
func WriteOrdersCSV(w io.Writer, orders []booking.Order) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write(OrderColumns); err != nil {
		return err
	}
	for _, o := range orders {
		if err := writer.Write(orderRecord(o)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
