package domain

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// RentalDays returns the number of billable days in [start, end).
// Partial days round up; any non-empty range is at least one day.
func RentalDays(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		d = -d
	}

	days := int(math.Ceil(float64(d) / float64(day)))
	if days < 1 {
		days = 1
	}
	return days
}

// DailySurcharge returns the per-day fee of the selected add-ons
func (s AdditionalServices) DailySurcharge() float64 {
	var total float64
	if s.Insurance {
		total += InsuranceDailySurcharge
	}
	if s.ChildSeat {
		total += ChildSeatDailySurcharge
	}
	if s.GPS {
		total += GPSDailySurcharge
	}
	return total
}

// TotalPrice is the base rental price plus per-day add-on surcharges
func TotalPrice(dailyPrice float64, days int, services AdditionalServices) float64 {
	base := dailyPrice * float64(days)
	return base + services.DailySurcharge()*float64(days)
}
