package models

import (
	"time"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	"github.com/m04kA/SMC-CarRental/pkg/ptr"
)

// Request модели

// CreateCarRequest запрос на добавление автомобиля в каталог
type CreateCarRequest struct {
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	DailyPrice   float64 `json:"price"`
	Seats        int     `json:"seats"`
	Transmission string  `json:"transmission"`
	FuelType     string  `json:"fuelType"`
	Available    *bool   `json:"available,omitempty"` // по умолчанию true
	ImageURL     *string `json:"imageUrl,omitempty"`
	Description  *string `json:"description,omitempty"`
}

// ToDomain конвертирует запрос в domain модель
func (r *CreateCarRequest) ToDomain() *domain.Car {
	return &domain.Car{
		Make:         r.Make,
		Model:        r.Model,
		Year:         r.Year,
		DailyPrice:   r.DailyPrice,
		Seats:        r.Seats,
		Transmission: domain.Transmission(r.Transmission),
		FuelType:     domain.FuelType(r.FuelType),
		Available:    ptr.Deref(r.Available, true),
		ImageURL:     r.ImageURL,
		Description:  r.Description,
	}
}

// UpdateCarRequest запрос на изменение автомобиля.
// Все поля опциональны - обновляются только переданные значения
type UpdateCarRequest struct {
	Make         *string  `json:"make,omitempty"`
	Model        *string  `json:"model,omitempty"`
	Year         *int     `json:"year,omitempty"`
	DailyPrice   *float64 `json:"price,omitempty"`
	Seats        *int     `json:"seats,omitempty"`
	Transmission *string  `json:"transmission,omitempty"`
	FuelType     *string  `json:"fuelType,omitempty"`
	Available    *bool    `json:"available,omitempty"`
	ImageURL     *string  `json:"imageUrl,omitempty"`
	Description  *string  `json:"description,omitempty"`
}

// ApplyTo возвращает копию автомобиля с примененными изменениями
func (r *UpdateCarRequest) ApplyTo(car *domain.Car) *domain.Car {
	updated := *car

	updated.Make = ptr.Deref(r.Make, car.Make)
	updated.Model = ptr.Deref(r.Model, car.Model)
	updated.Year = ptr.Deref(r.Year, car.Year)
	updated.DailyPrice = ptr.Deref(r.DailyPrice, car.DailyPrice)
	updated.Seats = ptr.Deref(r.Seats, car.Seats)
	updated.Available = ptr.Deref(r.Available, car.Available)
	if r.Transmission != nil {
		updated.Transmission = domain.Transmission(*r.Transmission)
	}
	if r.FuelType != nil {
		updated.FuelType = domain.FuelType(*r.FuelType)
	}
	if r.ImageURL != nil {
		updated.ImageURL = r.ImageURL
	}
	if r.Description != nil {
		updated.Description = r.Description
	}

	return &updated
}

// Response модели

// CarResponse ответ с данными автомобиля
type CarResponse struct {
	ID           int64     `json:"id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	DailyPrice   float64   `json:"price"`
	Seats        int       `json:"seats"`
	Transmission string    `json:"transmission"`
	FuelType     string    `json:"fuelType"`
	Available    bool      `json:"available"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AvailabilityResponse ответ на запрос доступности автомобиля
type AvailabilityResponse struct {
	CarID     int64  `json:"carId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Available bool   `json:"available"`
}

// FromDomainCar конвертирует domain модель в DTO
func FromDomainCar(c *domain.Car) *CarResponse {
	if c == nil {
		return nil
	}

	return &CarResponse{
		ID:           c.ID,
		Make:         c.Make,
		Model:        c.Model,
		Year:         c.Year,
		DailyPrice:   c.DailyPrice,
		Seats:        c.Seats,
		Transmission: string(c.Transmission),
		FuelType:     string(c.FuelType),
		Available:    c.Available,
		ImageURL:     c.ImageURL,
		Description:  c.Description,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// FromDomainCarList конвертирует список domain моделей в DTO
func FromDomainCarList(cars []*domain.Car) []CarResponse {
	resp := make([]CarResponse, 0, len(cars))
	for _, c := range cars {
		if carResp := FromDomainCar(c); carResp != nil {
			resp = append(resp, *carResp)
		}
	}
	return resp
}
