package models

import (
	"time"

	"github.com/m04kA/SMC-CarRental/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на изменение статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdatePaymentStatusRequest запрос на изменение статуса оплаты
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// Response модели

// AdditionalServices выбранные дополнительные услуги
type AdditionalServices struct {
	Insurance bool `json:"insurance"`
	ChildSeat bool `json:"childSeat"`
	GPS       bool `json:"gps"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`
	CarID  int64 `json:"carId"`

	StartDate string `json:"startDate"` // RFC 3339
	EndDate   string `json:"endDate"`   // RFC 3339

	TotalPrice    float64 `json:"totalPrice"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`

	PickupLocation     string             `json:"pickupLocation"`
	DropoffLocation    string             `json:"dropoffLocation"`
	AdditionalServices AdditionalServices `json:"additionalServices"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		CarID:         b.CarID,
		StartDate:     b.StartDate.Format(time.RFC3339),
		EndDate:       b.EndDate.Format(time.RFC3339),
		TotalPrice:    b.TotalPrice,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),

		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		AdditionalServices: AdditionalServices{
			Insurance: b.AdditionalServices.Insurance,
			ChildSeat: b.AdditionalServices.ChildSeat,
			GPS:       b.AdditionalServices.GPS,
		},

		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
