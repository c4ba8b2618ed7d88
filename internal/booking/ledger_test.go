package booking

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPaymentSumsLedger(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	order := Order{TotalAmount: 2000}
	amounts := []float64{500, 250.5, 100, 49.5}
	var want float64
	for _, a := range amounts {
		p, err := AddPayment(&order, PaymentInput{Amount: a, Mode: PaymentModeUPI}, now)
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "2024-03-10", p.Date)
		want += a
		assert.Equal(t, want, order.AmountPaid)
	}
	require.Len(t, order.Payments, len(amounts))
	assert.Equal(t, 1100.0, order.Balance())
}

func TestAddPaymentRejectsNonPositive(t *testing.T) {
	now := time.Now()
	order := Order{TotalAmount: 100}
	for _, amount := range []float64{0, -10, math.NaN(), math.Inf(1), 1e18, MaxAmount + 1} {
		_, err := AddPayment(&order, PaymentInput{Amount: amount}, now)
		require.ErrorIs(t, err, ErrValidation)
	}
	assert.Empty(t, order.Payments)
	assert.Zero(t, order.AmountPaid)
}

func TestAddPaymentLargeAmountKeepsLedgerSum(t *testing.T) {
	order := Order{TotalAmount: MaxAmount}
	p, err := AddPayment(&order, PaymentInput{Amount: MaxAmount}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, MaxAmount, p.Amount)
	assert.Equal(t, MaxAmount, order.AmountPaid)
	assert.Zero(t, order.Balance())
}

func TestAddPaymentKeepsExplicitDate(t *testing.T) {
	order := Order{}
	p, err := AddPayment(&order, PaymentInput{Amount: 10, Date: "2024-01-02"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", p.Date)
	assert.Equal(t, PaymentModeCash, p.Mode)
}

func TestBalanceMayGoNegative(t *testing.T) {
	order := Order{TotalAmount: 500}
	_, err := AddPayment(&order, PaymentInput{Amount: 700}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, -200.0, order.Balance())
}

func TestRemovePaymentRecalculates(t *testing.T) {
	order := Order{TotalAmount: 500}
	first, err := AddPayment(&order, PaymentInput{Amount: 100}, time.Now())
	require.NoError(t, err)
	_, err = AddPayment(&order, PaymentInput{Amount: 150}, time.Now())
	require.NoError(t, err)

	require.NoError(t, RemovePayment(&order, first.ID))
	assert.Equal(t, 150.0, order.AmountPaid)
	require.ErrorIs(t, RemovePayment(&order, "missing"), ErrNotFound)
}
