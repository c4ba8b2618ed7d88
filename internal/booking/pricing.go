package booking

import (
	"math"
	"strconv"
	"strings"
)

// Quote is the result of pricing an order composition.
type Quote struct {
	BaseAmount   float64 `json:"baseAmount"`
	ChargesTotal float64 `json:"chargesTotal"`
	TotalAmount  float64 `json:"totalAmount"`
}

// MaxAmount bounds every rate, charge and payment.
const MaxAmount = 1e12

// For returns the per-saree rate of a service type.
func (r Rates) For(serviceType ServiceType) (float64, error) {
	var rate float64
	switch serviceType {
	case ServicePrePleat:
		rate = r.PrePleatRate
	case ServiceDrape:
		rate = r.DrapeRate
	case ServiceBoth:
		rate = r.BothRate
	default:
		return 0, validationError("unknown service type %q", serviceType)
	}
	if !validAmount(rate) {
		return 0, validationError("rate for %s must be between 0 and %.0f", serviceType, MaxAmount)
	}
	return rate, nil
}

// Price computes base, charges and grand total from the current rate table.
func Price(serviceType ServiceType, sareeCount int, charges []Charge, rates Rates) (Quote, error) {
	if sareeCount < 1 {
		return Quote{}, validationError("saree count must be at least 1, got %d", sareeCount)
	}
	rate, err := rates.For(serviceType)
	if err != nil {
		return Quote{}, err
	}
	if err := checkCharges(charges); err != nil {
		return Quote{}, err
	}
	base := roundTo2(float64(sareeCount) * rate)
	extra := SumCharges(charges)
	return Quote{
		BaseAmount:   base,
		ChargesTotal: extra,
		TotalAmount:  roundTo2(base + extra),
	}, nil
}

// SumCharges totals additional charge amounts.
func SumCharges(charges []Charge) float64 {
	var total float64
	for _, c := range charges {
		total += c.Amount
	}
	return roundTo2(total)
}

// NewCharge parses user input into a charge. Amount must be a number >= 0.
func NewCharge(name, amount string) (Charge, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Charge{}, validationError("charge name is required")
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return Charge{}, validationError("charge amount %q is not a number", amount)
	}
	if err := checkChargeAmount(value); err != nil {
		return Charge{}, err
	}
	return Charge{Name: name, Amount: roundTo2(value)}, nil
}

func checkCharges(charges []Charge) error {
	for i, c := range charges {
		if strings.TrimSpace(c.Name) == "" {
			return validationError("charge %d: name is required", i+1)
		}
		if err := checkChargeAmount(c.Amount); err != nil {
			return err
		}
	}
	return nil
}

func checkChargeAmount(v float64) error {
	if !validAmount(v) {
		return validationError("charge amount must be between 0 and %.0f", MaxAmount)
	}
	return nil
}

// validAmount rejects NaN, infinities, negatives and anything above MaxAmount.
func validAmount(v float64) bool {
	return v >= 0 && v <= MaxAmount
}

// Reprice recomputes stored totals with the given rates. Payments are untouched.
func (o *Order) Reprice(rates Rates) error {
	q, err := Price(o.ServiceType, o.SareeCount, o.AdditionalCharges, rates)
	if err != nil {
		return err
	}
	o.BaseAmount = q.BaseAmount
	o.TotalAmount = q.TotalAmount
	return nil
}

// AddCharge appends a charge and reprices.
func (o *Order) AddCharge(c Charge, rates Rates) error {
	if err := checkCharges([]Charge{c}); err != nil {
		return err
	}
	charges := make([]Charge, 0, len(o.AdditionalCharges)+1)
	charges = append(charges, o.AdditionalCharges...)
	charges = append(charges, c)
	o.AdditionalCharges = charges
	return o.Reprice(rates)
}

// RemoveCharge deletes the charge at index and reprices.
func (o *Order) RemoveCharge(index int, rates Rates) error {
	if index < 0 || index >= len(o.AdditionalCharges) {
		return validationError("charge index %d out of range", index)
	}
	charges := make([]Charge, 0, len(o.AdditionalCharges)-1)
	charges = append(charges, o.AdditionalCharges[:index]...)
	charges = append(charges, o.AdditionalCharges[index+1:]...)
	o.AdditionalCharges = charges
	return o.Reprice(rates)
}

func roundTo2(val float64) float64 {
	return math.Round(val*100) / 100
}
