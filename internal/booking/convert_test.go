package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEnquiry() Enquiry {
	return Enquiry{
		ID:           "enq-1",
		CustomerID:   "cust-1",
		CustomerName: "Lakshmi",
		Phone:        "9845012345",
		ServiceType:  ServiceDrape,
		Location:     LocationOnsite,
		GPS:          "12.97,77.59",
		EventDate:    "2024-03-15",
		FunctionType: "Wedding",
		SareeCount:   2,
		Notes:        "two silk sarees",
		Status:       EnquiryStatusNew,
		CreatedAt:    time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestConvertEnquiryBuildsPendingOrder(t *testing.T) {
	now := time.Date(2024, 2, 5, 12, 0, 0, 0, time.UTC)
	e := sampleEnquiry()

	order, err := ConvertEnquiry(e, Rates{DrapeRate: 500}, now)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, 1000.0, order.BaseAmount)
	assert.Equal(t, 1000.0, order.TotalAmount)
	assert.Zero(t, order.AmountPaid)
	assert.Empty(t, order.Payments)
	assert.Empty(t, order.AdditionalCharges)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, "", order.Address)
	assert.Equal(t, e.ID, order.EnquiryID)
	assert.Equal(t, e.CustomerID, order.CustomerID)
	assert.Equal(t, e.CustomerName, order.CustomerName)
	assert.Equal(t, e.Phone, order.Phone)
	assert.Equal(t, e.Location, order.Location)
	assert.Equal(t, e.GPS, order.GPS)
	assert.Equal(t, e.EventDate, order.EventDate)
	assert.Equal(t, e.SareeCount, order.SareeCount)
	assert.Equal(t, e.Notes, order.Notes)
	assert.Equal(t, now, order.CreatedAt)
}

func TestConvertEnquiryRejectsClosedEnquiries(t *testing.T) {
	for _, status := range []EnquiryStatus{EnquiryStatusConverted, EnquiryStatusCancelled} {
		e := sampleEnquiry()
		e.Status = status
		_, err := ConvertEnquiry(e, Rates{DrapeRate: 500}, time.Now())
		require.ErrorIs(t, err, ErrInvalidStatus, string(status))
	}
}

func TestMarkConvertedOnlyFlipsStatus(t *testing.T) {
	other := sampleEnquiry()
	other.ID = "enq-2"
	enquiries := []Enquiry{sampleEnquiry(), other}

	next, err := MarkConverted(enquiries, "enq-1")
	require.NoError(t, err)
	require.Len(t, next, 2)

	want := enquiries[0]
	want.Status = EnquiryStatusConverted
	assert.Equal(t, want, next[0])
	assert.Equal(t, other, next[1])
	assert.Equal(t, EnquiryStatusNew, enquiries[0].Status, "input is not mutated")

	_, err = MarkConverted(enquiries, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
