package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drapebook/drapebook/internal/booking"
)

var reportDay = time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC)

func TestDashboardCountsWithMultiplicity(t *testing.T) {
	orders := []booking.Order{
		{ID: "A", EventDate: "2024-03-15", TotalAmount: 100, AmountPaid: 100},
		{ID: "B", EventDate: "2024-03-16", TotalAmount: 100, AmountPaid: 100},
		{ID: "C", EventDate: "2024-04-01", TotalAmount: 500, AmountPaid: 200},
	}
	enquiries := []booking.Enquiry{
		{ID: "D", Status: booking.EnquiryStatusNew},
		{ID: "E", Status: booking.EnquiryStatusFollowUp},
	}

	d := BuildDashboard(orders, enquiries, reportDay)
	assert.Equal(t, 4, d.TotalNotifications)
	assert.Equal(t, "2024-03-15", d.Date)

	orders[0].AmountPaid = 50
	d = BuildDashboard(orders, enquiries, reportDay)
	assert.Equal(t, 5, d.TotalNotifications, "A counted in both today and pending")
	assert.Len(t, d.PendingPayments, 2)
}

func TestDashboardOverdueCollections(t *testing.T) {
	orders := []booking.Order{
		{ID: "late", CollectionDate: "2024-03-10", Status: booking.OrderStatusReceived},
		{ID: "done", CollectionDate: "2024-03-10", Status: booking.OrderStatusDelivered},
		{ID: "closed", CollectionDate: "2024-03-01", Status: booking.OrderStatusCompleted},
		{ID: "today", CollectionDate: "2024-03-15", Status: booking.OrderStatusPending},
		{ID: "none", Status: booking.OrderStatusPending},
	}
	d := BuildDashboard(orders, nil, reportDay)
	require.Len(t, d.OverdueCollections, 1)
	assert.Equal(t, "late", d.OverdueCollections[0].ID)
	assert.Equal(t, 1, d.TotalNotifications)
}

func TestDashboardMonthEndTomorrow(t *testing.T) {
	orders := []booking.Order{{ID: "x", EventDate: "2024-04-01", TotalAmount: 0}}
	d := BuildDashboard(orders, nil, time.Date(2024, 3, 31, 22, 0, 0, 0, time.UTC))
	assert.Len(t, d.TomorrowEvents, 1)
}

func TestUnreadState(t *testing.T) {
	assert.Equal(t, Notifications{Total: 5, LastViewed: 2, Unread: 3}, UnreadState(5, 2))
	assert.Equal(t, Notifications{Total: 3, LastViewed: 3, Unread: 0}, UnreadState(3, 8))
	assert.Equal(t, Notifications{Total: 0, LastViewed: 0, Unread: 0}, UnreadState(0, 0))
}

func TestMonthlyStats(t *testing.T) {
	orders := []booking.Order{
		{ServiceType: booking.ServicePrePleat, EventDate: "2024-03-02", TotalAmount: 600, AmountPaid: 600, Status: booking.OrderStatusDelivered},
		{ServiceType: booking.ServiceDrape, EventDate: "2024-03-20", TotalAmount: 1000, AmountPaid: 400, Status: booking.OrderStatusReceived},
		{ServiceType: booking.ServiceBoth, EventDate: "2024-03-31", TotalAmount: 700, AmountPaid: 900, Status: booking.OrderStatusPending},
		{ServiceType: booking.ServiceBoth, EventDate: "2024-03-31", TotalAmount: 700, AmountPaid: 0, Status: booking.OrderStatusInProgress},
		{ServiceType: booking.ServiceDrape, EventDate: "2024-04-01", TotalAmount: 5000},
		{ServiceType: booking.ServiceDrape, EventDate: ""},
	}
	s := BuildMonthlyStats(orders, 2024, time.March)
	assert.Equal(t, 4, s.TotalOrders)
	assert.Equal(t, 1, s.PrePleat)
	assert.Equal(t, 1, s.Drape)
	assert.Equal(t, 2, s.Both)
	assert.Equal(t, 3000.0, s.Revenue)
	assert.Equal(t, 1900.0, s.Paid)
	assert.Equal(t, 1300.0, s.Pending, "overpaid order does not reduce pending")
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.Waiting)
	assert.Equal(t, 2, s.Confirmed)
}

func TestCustomerReportLifetimeValue(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	customers := []booking.Customer{
		{ID: "c1", Name: "Asha", Phone: "9845012345", CreatedAt: created},
		{ID: "c2", Name: "Bhavya", Phone: "9900011122", CreatedAt: created.AddDate(0, 2, 0)},
		{ID: "c3", Name: "Aarti", Phone: "9000000000", CreatedAt: created},
	}
	orders := []booking.Order{
		{Phone: "+91 98450 12345", TotalAmount: 500, AmountPaid: 100, CreatedAt: created.AddDate(0, 0, 5)},
		{Phone: "9845012345", TotalAmount: 250, AmountPaid: 250, CreatedAt: created.AddDate(0, 3, 0)},
		{CustomerID: "c2", Phone: "9845012345", TotalAmount: 90, AmountPaid: 0, CreatedAt: created},
	}
	enquiries := []booking.Enquiry{{Phone: "09900011122", CreatedAt: created.AddDate(0, 1, 0)}}

	rows := BuildCustomerReport(customers, orders, enquiries, booking.DefaultPhones)
	require.Len(t, rows, 3)

	asha := rows[0]
	assert.Equal(t, "c1", asha.Customer.ID, "most recent activity first")
	assert.Equal(t, 2, asha.OrderCount)
	assert.Equal(t, 350.0, asha.TotalSpent)
	assert.Equal(t, 400.0, asha.TotalPending)
	assert.Equal(t, created.AddDate(0, 3, 0), asha.LastActivity)

	bhavya := rows[1]
	assert.Equal(t, "c2", bhavya.Customer.ID)
	assert.Equal(t, 1, bhavya.OrderCount, "customerId takes precedence over phone")
	assert.Equal(t, 1, bhavya.EnquiryCount)
	assert.Equal(t, created.AddDate(0, 2, 0), bhavya.LastActivity)

	assert.Equal(t, "c3", rows[2].Customer.ID)
	assert.Zero(t, rows[2].OrderCount)
}

func TestReferralReport(t *testing.T) {
	customers := []booking.Customer{
		{ID: "r1", Name: "Referrer"},
		{ID: "a", ReferralSource: booking.ReferralMakeupArtist, MakeupArtistDetails: &booking.MakeupArtist{Name: "Neha Glam"}},
		{ID: "b", ReferralSource: booking.ReferralMakeupArtist, MakeupArtistDetails: &booking.MakeupArtist{Name: "NEHA GLAM", Phone: "98000"}},
		{ID: "c", ReferralSource: booking.ReferralCustomer, ReferredByCustomerID: "r1"},
		{ID: "d", ReferralSource: booking.ReferralCustomer, ReferredByCustomerID: "ghost"},
		{ID: "e", ReferralSource: booking.ReferralInstagram},
		{ID: "f", ReferralSource: booking.ReferralOther},
	}
	r := BuildReferralReport(customers)

	require.Len(t, r.MakeupArtists, 1)
	assert.Equal(t, "Neha Glam", r.MakeupArtists[0].Name)
	assert.Equal(t, "98000", r.MakeupArtists[0].Phone)
	assert.Equal(t, 2, r.MakeupArtists[0].Count)

	require.Len(t, r.Customers, 2)
	assert.Equal(t, "Referrer", r.Customers[0].ReferrerName)
	assert.True(t, r.Customers[0].Resolved)
	assert.False(t, r.Customers[1].Resolved)

	assert.Equal(t, 1, r.Instagram)
	assert.Equal(t, 1, r.Other)

	empty := BuildReferralReport(nil)
	assert.NotNil(t, empty.MakeupArtists)
	assert.Empty(t, empty.Customers)
}
