package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// IsValid returns true for known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsBlocking returns true if a booking in this status counts against availability
func (s BookingStatus) IsBlocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal returns true if no transition leaves this status
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// IsValid returns true for known payment statuses
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no transition leaves this payment status
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentRefunded
}

// AdditionalServices optional add-ons selected for a booking
type AdditionalServices struct {
	Insurance bool
	ChildSeat bool
	GPS       bool
}

// Booking represents a car rental booking
type Booking struct {
	ID     int64
	UserID int64
	CarID  int64

	// StartDate and EndDate form the half-open range [StartDate, EndDate)
	StartDate time.Time
	EndDate   time.Time

	TotalPrice    float64
	Status        BookingStatus
	PaymentStatus PaymentStatus

	PickupLocation  string
	DropoffLocation string

	AdditionalServices AdditionalServices

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the booking counts against car availability
func (b *Booking) IsBlocking() bool {
	return b.Status.IsBlocking()
}

// Overlaps returns true if the booking range overlaps [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartDate, b.EndDate, start, end)
}

// Overlaps is the half-open interval test: [s1, e1) and [s2, e2) overlap
// iff s1 < e2 and s2 < e1. Adjacent ranges do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
