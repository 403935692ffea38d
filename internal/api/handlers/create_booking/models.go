package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-CarRental/internal/api/handlers"
	"github.com/m04kA/SMC-CarRental/internal/domain"
	"github.com/m04kA/SMC-CarRental/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-CarRental/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CarID              int64                      `json:"carId"`
	StartDate          string                     `json:"startDate"` // "2024-06-01" или RFC 3339
	EndDate            string                     `json:"endDate"`
	PickupLocation     string                     `json:"pickupLocation"`
	DropoffLocation    string                     `json:"dropoffLocation"`
	AdditionalServices *models.AdditionalServices `json:"additionalServices,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	models.BookingResponse
	Days int `json:"days"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом дат)
func (r *CreateBookingRequest) ToUseCaseRequest(identity domain.Identity) (*createBooking.Request, error) {
	start, err := handlers.ParseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}

	end, err := handlers.ParseDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	var services domain.AdditionalServices
	if r.AdditionalServices != nil {
		services = domain.AdditionalServices{
			Insurance: r.AdditionalServices.Insurance,
			ChildSeat: r.AdditionalServices.ChildSeat,
			GPS:       r.AdditionalServices.GPS,
		}
	}

	return &createBooking.Request{
		Identity:           identity,
		CarID:              r.CarID,
		StartDate:          start,
		EndDate:            end,
		PickupLocation:     r.PickupLocation,
		DropoffLocation:    r.DropoffLocation,
		AdditionalServices: services,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingResponse: *models.FromDomainBooking(resp.Booking),
		Days:            resp.Days,
	}
}
