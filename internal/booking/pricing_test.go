package booking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRates = Rates{PrePleatRate: 300, DrapeRate: 500, BothRate: 600}

func TestPriceBothWithTravelCharge(t *testing.T) {
	q, err := Price(ServiceBoth, 3, nil, testRates)
	require.NoError(t, err)
	assert.Equal(t, 1800.0, q.BaseAmount)
	assert.Equal(t, 1800.0, q.TotalAmount)

	order := Order{ServiceType: ServiceBoth, SareeCount: 3}
	require.NoError(t, order.Reprice(testRates))
	charge, err := NewCharge("Travel", "200")
	require.NoError(t, err)
	require.NoError(t, order.AddCharge(charge, testRates))
	assert.Equal(t, 1800.0, order.BaseAmount)
	assert.Equal(t, 2000.0, order.TotalAmount)
}

func TestPricingInvariantAcrossEdits(t *testing.T) {
	order := Order{ServiceType: ServicePrePleat, SareeCount: 2}
	require.NoError(t, order.Reprice(testRates))

	steps := []func() error{
		func() error { return order.AddCharge(Charge{Name: "Travel", Amount: 150}, testRates) },
		func() error { return order.AddCharge(Charge{Name: "Urgent", Amount: 99.5}, testRates) },
		func() error { order.SareeCount = 5; return order.Reprice(testRates) },
		func() error { return order.RemoveCharge(0, testRates) },
		func() error { order.ServiceType = ServiceDrape; return order.Reprice(testRates) },
		func() error { return order.AddCharge(Charge{Name: "Pinning", Amount: 0}, testRates) },
	}
	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)
		rate, err := testRates.For(order.ServiceType)
		require.NoError(t, err)
		assert.Equal(t, float64(order.SareeCount)*rate, order.BaseAmount, "step %d base", i)
		assert.InDelta(t, order.BaseAmount+SumCharges(order.AdditionalCharges), order.TotalAmount, 0.001, "step %d total", i)
	}
	require.Len(t, order.AdditionalCharges, 2)
	assert.Equal(t, "Urgent", order.AdditionalCharges[0].Name)
	assert.Equal(t, "Pinning", order.AdditionalCharges[1].Name)
}

func TestPriceRejectsBadInput(t *testing.T) {
	_, err := Price(ServiceDrape, 0, nil, testRates)
	require.ErrorIs(t, err, ErrValidation)

	_, err = Price(ServiceType("steam"), 1, nil, testRates)
	require.ErrorIs(t, err, ErrValidation)
}

func TestNewChargeValidation(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		ok     bool
	}{
		{"Travel", "200", true},
		{"Box", "0", true},
		{"  ", "10", false},
		{"Travel", "abc", false},
		{"Travel", "-5", false},
		{"Travel", "", false},
		{"Travel", "Inf", false},
		{"Travel", "NaN", false},
		{"Travel", "1e18", false},
		{"Travel", "1000000000000", true},
	}
	for _, tc := range cases {
		c, err := NewCharge(tc.name, tc.amount)
		if tc.ok {
			require.NoError(t, err, "%q/%q", tc.name, tc.amount)
			assert.NotEmpty(t, c.Name)
			assert.GreaterOrEqual(t, c.Amount, 0.0)
			continue
		}
		assert.True(t, errors.Is(err, ErrValidation), "%q/%q", tc.name, tc.amount)
	}
}

func TestPriceRejectsOutOfRangeRates(t *testing.T) {
	_, err := Price(ServiceBoth, 1, nil, Rates{BothRate: 1e17})
	require.ErrorIs(t, err, ErrValidation)

	_, err = Price(ServiceBoth, 1, []Charge{{Name: "Travel", Amount: 1e17}}, testRates)
	require.ErrorIs(t, err, ErrValidation)
}

func TestPriceLargeAmountsKeepTotals(t *testing.T) {
	rates := Rates{BothRate: MaxAmount}
	q, err := Price(ServiceBoth, 2, []Charge{{Name: "Travel", Amount: MaxAmount}}, rates)
	require.NoError(t, err)
	assert.Equal(t, 2*MaxAmount, q.BaseAmount)
	assert.Equal(t, MaxAmount, q.ChargesTotal)
	assert.Equal(t, q.BaseAmount+q.ChargesTotal, q.TotalAmount)
}

func TestRoundTo2(t *testing.T) {
	assert.Equal(t, 12.35, roundTo2(12.346))
	assert.Equal(t, -12.35, roundTo2(-12.346))
	assert.Equal(t, 3e13, roundTo2(3e13))
}

func TestRemoveChargeOutOfRange(t *testing.T) {
	order := Order{ServiceType: ServiceDrape, SareeCount: 1}
	require.ErrorIs(t, order.RemoveCharge(0, testRates), ErrValidation)
}
