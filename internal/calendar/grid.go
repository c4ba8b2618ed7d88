package calendar

import (
	"time"

	"github.com/drapebook/drapebook/internal/booking"
)

// Day is one cell of the month grid.
type Day struct {
	Date           time.Time         `json:"date"`
	DayOfMonth     int               `json:"dayOfMonth"`
	IsCurrentMonth bool              `json:"isCurrentMonth"`
	IsToday        bool              `json:"isToday"`
	Orders         []booking.Order   `json:"orders"`
	Enquiries      []booking.Enquiry `json:"enquiries"`
}

// Week runs Sunday through Saturday.
type Week [7]Day

// GenerateMonth lays out the weeks covering month, padded with days from the adjacent months
// so that every week is complete. Dates are local midnight in now's location.
func GenerateMonth(year int, month time.Month, now time.Time) []Week {
	loc := now.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	// time.Date normalises day 0 of the next month to the last day of this one.
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc)

	leading := int(first.Weekday())
	trailing := 6 - int(last.Weekday())
	total := leading + last.Day() + trailing

	ty, tm, td := now.Date()
	start := first.AddDate(0, 0, -leading)

	weeks := make([]Week, 0, total/7)
	var week Week
	for i := 0; i < total; i++ {
		date := start.AddDate(0, 0, i)
		y, m, d := date.Date()
		week[i%7] = Day{
			Date:           date,
			DayOfMonth:     d,
			IsCurrentMonth: y == year && m == month,
			IsToday:        y == ty && m == tm && d == td,
			Orders:         []booking.Order{},
			Enquiries:      []booking.Enquiry{},
		}
		if i%7 == 6 {
			weeks = append(weeks, week)
			week = Week{}
		}
	}
	return weeks
}
