package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ConvertEnquiry builds a pending order from an enquiry using the current rates.
// The site address is not carried over and must be filled in on the order later.
func ConvertEnquiry(e Enquiry, rates Rates, now time.Time) (Order, error) {
	switch e.Status {
	case EnquiryStatusConverted:
		return Order{}, fmt.Errorf("%w: enquiry %s is already converted", ErrInvalidStatus, e.ID)
	case EnquiryStatusCancelled:
		return Order{}, fmt.Errorf("%w: enquiry %s is cancelled", ErrInvalidStatus, e.ID)
	}
	quote, err := Price(e.ServiceType, e.SareeCount, nil, rates)
	if err != nil {
		return Order{}, fmt.Errorf("price enquiry %s: %w", e.ID, err)
	}
	return Order{
		ID:                uuid.NewString(),
		CustomerID:        e.CustomerID,
		EnquiryID:         e.ID,
		CustomerName:      e.CustomerName,
		Phone:             e.Phone,
		Address:           "",
		ServiceType:       e.ServiceType,
		Location:          e.Location,
		GPS:               e.GPS,
		FunctionType:      e.FunctionType,
		PleatType:         e.PleatType,
		SareeCount:        e.SareeCount,
		EventDate:         e.EventDate,
		BaseAmount:        quote.BaseAmount,
		AdditionalCharges: []Charge{},
		TotalAmount:       quote.BaseAmount,
		Payments:          []Payment{},
		AmountPaid:        0,
		Status:            OrderStatusPending,
		Notes:             e.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// MarkConverted returns a copy of enquiries with only the matching enquiry's status flipped.
func MarkConverted(enquiries []Enquiry, id string) ([]Enquiry, error) {
	idx := indexEnquiry(enquiries, id)
	if idx < 0 {
		return nil, fmt.Errorf("enquiry %s: %w", id, ErrNotFound)
	}
	out := make([]Enquiry, len(enquiries))
	copy(out, enquiries)
	out[idx].Status = EnquiryStatusConverted
	return out, nil
}
