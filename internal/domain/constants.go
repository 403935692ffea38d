package domain

// Catalog constraints
const (
	MinCarYear  = 1900
	MaxCarYear  = 2099
	MinCarSeats = 1
	MaxCarSeats = 10
)

// Per-day add-on surcharges
const (
	InsuranceDailySurcharge = 15.0
	ChildSeatDailySurcharge = 5.0
	GPSDailySurcharge       = 10.0
)

// Business validation constants
const (
	MaxLocationLength = 255
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses statuses that take part in the overlap test
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
