package reports

import (
	"sort"
	"time"

	"golang.org/x/text/cases"

	"github.com/drapebook/drapebook/internal/booking"
)

// CustomerSummary is one row of the customer report.
type CustomerSummary struct {
	Customer     booking.Customer `json:"customer"`
	OrderCount   int              `json:"orderCount"`
	EnquiryCount int              `json:"enquiryCount"`
	TotalSpent   float64          `json:"totalSpent"`
	TotalPending float64          `json:"totalPending"`
	LastActivity time.Time        `json:"lastActivity"`
}

// BuildCustomerReport joins bookings to customers, by customerId when the booking carries
// one and by canonical phone otherwise. Rows are sorted most recently active first.
func BuildCustomerReport(customers []booking.Customer, orders []booking.Order, enquiries []booking.Enquiry, phones booking.PhoneCanonicalizer) []CustomerSummary {
	rows := make([]CustomerSummary, 0, len(customers))
	for _, c := range customers {
		row := CustomerSummary{Customer: c, LastActivity: c.CreatedAt}
		canonical := phones.Canonical(c.Phone)
		belongs := func(customerID, phone string) bool {
			if customerID != "" {
				return customerID == c.ID
			}
			return canonical != "" && phones.Canonical(phone) == canonical
		}
		for _, o := range orders {
			if !belongs(o.CustomerID, o.Phone) {
				continue
			}
			row.OrderCount++
			row.TotalSpent += o.AmountPaid
			row.TotalPending += o.Balance()
			if o.CreatedAt.After(row.LastActivity) {
				row.LastActivity = o.CreatedAt
			}
		}
		for _, e := range enquiries {
			if !belongs(e.CustomerID, e.Phone) {
				continue
			}
			row.EnquiryCount++
			if e.CreatedAt.After(row.LastActivity) {
				row.LastActivity = e.CreatedAt
			}
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].LastActivity.Equal(rows[j].LastActivity) {
			return rows[i].LastActivity.After(rows[j].LastActivity)
		}
		return rows[i].Customer.Name < rows[j].Customer.Name
	})
	return rows
}

// ArtistReferrals groups customers referred by one makeup artist.
type ArtistReferrals struct {
	Name      string   `json:"name"`
	Phone     string   `json:"phone,omitempty"`
	Count     int      `json:"count"`
	Customers []string `json:"customers"`
}

// CustomerReferrals groups customers referred by an existing customer.
type CustomerReferrals struct {
	ReferrerID   string   `json:"referrerId"`
	ReferrerName string   `json:"referrerName,omitempty"`
	Resolved     bool     `json:"resolved"`
	Count        int      `json:"count"`
	Customers    []string `json:"customers"`
}

// ReferralReport partitions customers by referral source.
type ReferralReport struct {
	MakeupArtists []ArtistReferrals   `json:"makeupArtists"`
	Customers     []CustomerReferrals `json:"customers"`
	Instagram     int                 `json:"instagram"`
	Other         int                 `json:"other"`
}

// BuildReferralReport groups artists by case-folded name and referrers by customer id.
// Groups keep first-seen order.
func BuildReferralReport(customers []booking.Customer) ReferralReport {
	report := ReferralReport{MakeupArtists: []ArtistReferrals{}, Customers: []CustomerReferrals{}}
	fold := cases.Fold()

	byID := make(map[string]booking.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}
	artistIdx := map[string]int{}
	referrerIdx := map[string]int{}

	for _, c := range customers {
		switch c.ReferralSource {
		case booking.ReferralMakeupArtist:
			if c.MakeupArtistDetails == nil || c.MakeupArtistDetails.Name == "" {
				report.Other++
				continue
			}
			key := fold.String(c.MakeupArtistDetails.Name)
			idx, ok := artistIdx[key]
			if !ok {
				idx = len(report.MakeupArtists)
				artistIdx[key] = idx
				report.MakeupArtists = append(report.MakeupArtists, ArtistReferrals{
					Name:      c.MakeupArtistDetails.Name,
					Phone:     c.MakeupArtistDetails.Phone,
					Customers: []string{},
				})
			}
			group := &report.MakeupArtists[idx]
			if group.Phone == "" {
				group.Phone = c.MakeupArtistDetails.Phone
			}
			group.Count++
			group.Customers = append(group.Customers, c.ID)
		case booking.ReferralCustomer:
			if c.ReferredByCustomerID == "" {
				report.Other++
				continue
			}
			idx, ok := referrerIdx[c.ReferredByCustomerID]
			if !ok {
				idx = len(report.Customers)
				referrerIdx[c.ReferredByCustomerID] = idx
				referrer, resolved := byID[c.ReferredByCustomerID]
				report.Customers = append(report.Customers, CustomerReferrals{
					ReferrerID:   c.ReferredByCustomerID,
					ReferrerName: referrer.Name,
					Resolved:     resolved,
					Customers:    []string{},
				})
			}
			group := &report.Customers[idx]
			group.Count++
			group.Customers = append(group.Customers, c.ID)
		case booking.ReferralInstagram:
			report.Instagram++
		case booking.ReferralOther:
			report.Other++
		}
	}
	return report
}
