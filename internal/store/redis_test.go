package store

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drapebook/drapebook/internal/booking"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "test", nil), mr
}

func TestRedisStoreEmptyLoads(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	orders, err := s.LoadOrders(ctx)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)

	settings, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, booking.DefaultSettings(), settings)

	n, err := s.LastViewed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedisStoreRoundTripUnderNamespace(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	orders := []booking.Order{{ID: "o1", CustomerName: "Asha", TotalAmount: 1200, Payments: []booking.Payment{}, AdditionalCharges: []booking.Charge{}}}
	err := s.WithTx(ctx, func(ctx context.Context, tx booking.TxRepository) error {
		require.NoError(t, tx.SaveOrders(ctx, orders))
		return tx.SaveEnquiries(ctx, []booking.Enquiry{{ID: "e1", Status: booking.EnquiryStatusConverted}})
	})
	require.NoError(t, err)

	assert.True(t, mr.Exists("test:orders"))
	assert.True(t, mr.Exists("test:enquiries"))
	assert.False(t, mr.Exists("test:customers"))

	got, err := s.LoadOrders(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Asha", got[0].CustomerName)
	assert.Equal(t, 1200.0, got[0].TotalAmount)
}

func TestRedisStoreFailedTxWritesNothing(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(ctx context.Context, tx booking.TxRepository) error {
		require.NoError(t, tx.SaveOrders(ctx, []booking.Order{{ID: "o1"}}))
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("test:orders"))
}

func TestRedisStoreCorruptDataFallsBack(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("test:customers", "{not json"))
	require.NoError(t, mr.Set("test:settings", "[]"))
	require.NoError(t, mr.Set("test:lastViewedNotificationCount", "many"))

	customers, err := s.LoadCustomers(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)

	settings, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, booking.DefaultSettings(), settings)

	n, err := s.LastViewed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedisStoreLastViewed(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetLastViewed(ctx, 7))
	n, err := s.LastViewed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestRedisStoreBacksBookingService(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	svc := booking.NewService(s, booking.ServiceConfig{})

	enquiry, err := svc.CreateEnquiry(ctx, booking.CreateEnquiryRequest{
		CustomerName: "Kavya",
		Phone:        "9811122233",
		ServiceType:  booking.ServiceDrape,
		Location:     booking.LocationShop,
		SareeCount:   2,
	})
	require.NoError(t, err)

	order, err := svc.ConvertEnquiry(ctx, enquiry.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, order.TotalAmount)

	enquiries, err := s.LoadEnquiries(ctx)
	require.NoError(t, err)
	require.Len(t, enquiries, 1)
	assert.Equal(t, booking.EnquiryStatusConverted, enquiries[0].Status)

	customers, err := s.LoadCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, customers[0].ID, order.CustomerID)
}
