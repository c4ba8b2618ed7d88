package booking

import (
	"time"

	"github.com/google/uuid"
)

// AddPayment appends a payment to the order ledger and recomputes AmountPaid.
// The order is left unchanged when the input is rejected.
func AddPayment(o *Order, in PaymentInput, now time.Time) (Payment, error) {
	if !(in.Amount > 0) || in.Amount > MaxAmount {
		return Payment{}, validationError("payment amount must be a positive number up to %.0f", MaxAmount)
	}
	if err := validateStruct(in); err != nil {
		return Payment{}, err
	}
	p := Payment{
		ID:     uuid.NewString(),
		Amount: roundTo2(in.Amount),
		Date:   in.Date,
		Mode:   in.Mode,
		Note:   in.Note,
	}
	if p.Date == "" {
		p.Date = now.Format(DateLayout)
	}
	if p.Mode == "" {
		p.Mode = PaymentModeCash
	}
	payments := make([]Payment, 0, len(o.Payments)+1)
	payments = append(payments, o.Payments...)
	o.Payments = append(payments, p)
	o.RecalculatePaid()
	return p, nil
}

// RemovePayment drops a ledger entry by id.
func RemovePayment(o *Order, paymentID string) error {
	for i, p := range o.Payments {
		if p.ID != paymentID {
			continue
		}
		payments := make([]Payment, 0, len(o.Payments)-1)
		payments = append(payments, o.Payments[:i]...)
		o.Payments = append(payments, o.Payments[i+1:]...)
		o.RecalculatePaid()
		return nil
	}
	return ErrNotFound
}

// RecalculatePaid derives AmountPaid from the ledger.
func (o *Order) RecalculatePaid() {
	var sum float64
	for _, p := range o.Payments {
		sum += p.Amount
	}
	o.AmountPaid = roundTo2(sum)
}
