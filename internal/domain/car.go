package domain

import (
	"fmt"
	"strings"
	"time"
)

// Transmission of a car
type Transmission string

const (
	TransmissionAutomatic Transmission = "automatic"
	TransmissionManual    Transmission = "manual"
)

// IsValid returns true for known transmissions
func (t Transmission) IsValid() bool {
	return t == TransmissionAutomatic || t == TransmissionManual
}

// FuelType of a car
type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
)

// IsValid returns true for known fuel types
func (f FuelType) IsValid() bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid:
		return true
	default:
		return false
	}
}

// ErrInvalidCar is returned when car attributes violate catalog constraints
var ErrInvalidCar = NewError(ErrInvalidInput, "invalid car")

// Car represents a rental car in the catalog
type Car struct {
	ID           int64
	Make         string
	Model        string
	Year         int
	DailyPrice   float64
	Seats        int
	Transmission Transmission
	FuelType     FuelType

	// Available tells whether the car is offered for rental at all.
	// It is independent of booking overlap.
	Available bool

	ImageURL    *string
	Description *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks catalog constraints
func (c *Car) Validate() error {
	if strings.TrimSpace(c.Make) == "" {
		return fmt.Errorf("%w: make is required", ErrInvalidCar)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidCar)
	}
	if c.Year < MinCarYear || c.Year > MaxCarYear {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidCar, MinCarYear, MaxCarYear)
	}
	if c.DailyPrice < 0 {
		return fmt.Errorf("%w: daily price must not be negative", ErrInvalidCar)
	}
	if c.Seats < MinCarSeats || c.Seats > MaxCarSeats {
		return fmt.Errorf("%w: seats must be between %d and %d", ErrInvalidCar, MinCarSeats, MaxCarSeats)
	}
	if !c.Transmission.IsValid() {
		return fmt.Errorf("%w: unknown transmission %q", ErrInvalidCar, c.Transmission)
	}
	if !c.FuelType.IsValid() {
		return fmt.Errorf("%w: unknown fuel type %q", ErrInvalidCar, c.FuelType)
	}
	return nil
}

// SameIdentity returns true if both cars share the identifying attributes
// that must stay fixed once bookings reference the car
func (c *Car) SameIdentity(other *Car) bool {
	return c.Make == other.Make &&
		c.Model == other.Model &&
		c.Year == other.Year &&
		c.Transmission == other.Transmission &&
		c.FuelType == other.FuelType
}

// CarLockKey is the key under which operations on one car are serialized
func CarLockKey(carID int64) string {
	return fmt.Sprintf("car:%d", carID)
}
