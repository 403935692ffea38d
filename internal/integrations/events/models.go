package events

import (
	"time"

	"github.com/m04kA/SMC-CarRental/internal/domain"
)

// Type тип события жизненного цикла бронирования. Используется как routing key.
type Type string

const (
	BookingCreated        Type = "booking.created"
	BookingStatusChanged  Type = "booking.status_changed"
	BookingPaymentChanged Type = "booking.payment_changed"
	BookingDeleted        Type = "booking.deleted"
)

// Event событие, публикуемое в exchange
type Event struct {
	Type       Type           `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Booking    BookingPayload `json:"booking"`

	PreviousStatus        *string `json:"previousStatus,omitempty"`
	PreviousPaymentStatus *string `json:"previousPaymentStatus,omitempty"`
}

// BookingPayload снимок бронирования в момент события
type BookingPayload struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	CarID         int64     `json:"carId"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	TotalPrice    float64   `json:"totalPrice"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
}

// NewBookingEvent собирает событие по бронированию
func NewBookingEvent(t Type, b *domain.Booking) Event {
	return Event{
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Booking: BookingPayload{
			ID:            b.ID,
			UserID:        b.UserID,
			CarID:         b.CarID,
			StartDate:     b.StartDate,
			EndDate:       b.EndDate,
			TotalPrice:    b.TotalPrice,
			Status:        string(b.Status),
			PaymentStatus: string(b.PaymentStatus),
		},
	}
}

// WithPreviousStatus дополняет событие статусом до перехода
func (e Event) WithPreviousStatus(s domain.BookingStatus) Event {
	v := string(s)
	e.PreviousStatus = &v
	return e
}

// WithPreviousPaymentStatus дополняет событие статусом оплаты до перехода
func (e Event) WithPreviousPaymentStatus(s domain.PaymentStatus) Event {
	v := string(s)
	e.PreviousPaymentStatus = &v
	return e
}
