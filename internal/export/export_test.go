package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/drapebook/drapebook/internal/booking"
)

var sampleOrders = []booking.Order{
	{
		CustomerName: "Asha, R",
		Phone:        "9845012345",
		ServiceType:  booking.ServiceBoth,
		Location:     booking.LocationOnsite,
		SareeCount:   3,
		EventDate:    "2024-03-15",
		TotalAmount:  2000,
		AmountPaid:   2500,
		Status:       booking.OrderStatusDelivered,
	},
}

func TestWriteOrdersCSV(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteOrdersCSV(buf, sampleOrders))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, OrderColumns, records[0])
	assert.Equal(t, []string{"Asha, R", "9845012345", "both", "onsite", "3", "2024-03-15", "2000.00", "2500.00", "-500.00", "delivered"}, records[1])
}

func TestWriteOrdersCSVEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteOrdersCSV(buf, nil))
	assert.Equal(t, "Customer,Phone,Service,Location,Sarees,Event Date,Total,Paid,Balance,Status\n", buf.String())
}

func TestWriteOrdersXLSX(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteOrdersXLSX(buf, sampleOrders))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(OrdersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, OrderColumns, rows[0])
	assert.Equal(t, "Asha, R", rows[1][0])
	assert.Equal(t, "-500", rows[1][8])
}
