package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drapebook/drapebook/internal/booking"
)

func TestBusinessClockUsesConfiguredZone(t *testing.T) {
	clock, err := BusinessClock(&Config{CronTimezone: "Asia/Kolkata"})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", clock().Location().String())

	_, err = BusinessClock(&Config{CronTimezone: "Mars/Olympus"})
	require.Error(t, err)
}

func TestBuildServicesStampsBusinessTime(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &Config{
		StoreDriver:        StoreRedis,
		RedisAddr:          mr.Addr(),
		RedisNamespace:     "test",
		DefaultCountryCode: "91",
		CronTimezone:       "Asia/Kolkata",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	services, err := BuildServices(context.Background(), cfg, logger, nil)
	require.NoError(t, err)
	t.Cleanup(services.Close)
	assert.Equal(t, "Asia/Kolkata", services.Clock().Location().String())

	order, err := services.Booking.CreateOrder(context.Background(), booking.CreateOrderRequest{
		CustomerName: "Asha",
		Phone:        "9845012345",
		ServiceType:  booking.ServiceDrape,
		Location:     booking.LocationShop,
		SareeCount:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", order.CreatedAt.Location().String())
}
