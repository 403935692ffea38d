package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCar() Car {
	return Car{
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2022,
		DailyPrice:   50,
		Seats:        5,
		Transmission: TransmissionAutomatic,
		FuelType:     FuelHybrid,
		Available:    true,
	}
}

func TestCar_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Car)
		valid  bool
	}{
		{"valid", func(c *Car) {}, true},
		{"zero price allowed", func(c *Car) { c.DailyPrice = 0 }, true},
		{"missing make", func(c *Car) { c.Make = "  " }, false},
		{"missing model", func(c *Car) { c.Model = "" }, false},
		{"year too old", func(c *Car) { c.Year = 1899 }, false},
		{"year too new", func(c *Car) { c.Year = 2100 }, false},
		{"negative price", func(c *Car) { c.DailyPrice = -1 }, false},
		{"no seats", func(c *Car) { c.Seats = 0 }, false},
		{"too many seats", func(c *Car) { c.Seats = 11 }, false},
		{"bad transmission", func(c *Car) { c.Transmission = "cvt" }, false},
		{"bad fuel", func(c *Car) { c.FuelType = "lpg" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCar()
			tt.mutate(&c)
			err := c.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidCar)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCar_SameIdentity(t *testing.T) {
	a := validCar()
	b := validCar()
	b.DailyPrice = 80
	b.Available = false
	assert.True(t, a.SameIdentity(&b))

	b.Year = 2021
	assert.False(t, a.SameIdentity(&b))
}

func TestKindOf(t *testing.T) {
	notFound := NewError(ErrNotFound, "car not found")

	assert.Equal(t, KindNotFound, KindOf(notFound))
	assert.Equal(t, KindInvalidInput, KindOf(ErrInvalidCar))
	assert.Equal(t, KindInternal, KindOf(errors.New("socket closed")))
	assert.Equal(t, "car not found", notFound.Error())
}
