package check_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	"github.com/m04kA/SMC-CarRental/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarRental/internal/service/availability"
	"github.com/m04kA/SMC-CarRental/internal/service/cars/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	car, err := store.Cars().Create(ctx, &domain.Car{
		Make: "Kia", Model: "Rio", Year: 2021, DailyPrice: 30, Seats: 5,
		Transmission: domain.TransmissionManual, FuelType: domain.FuelPetrol, Available: true,
	})
	require.NoError(t, err)

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err = store.Bookings().Create(ctx, &domain.Booking{
		UserID: 1, CarID: car.ID, StartDate: start, EndDate: start.AddDate(0, 0, 4),
		Status: domain.StatusConfirmed, PaymentStatus: domain.PaymentUnpaid,
	})
	require.NoError(t, err)

	r := mux.NewRouter()
	h := NewHandler(availability.NewService(store.Cars(), store.Bookings(), nopLogger{}), nopLogger{})
	r.HandleFunc("/api/v1/cars/{carId}/availability", h.Handle)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	tests := []struct {
		query     string
		status    int
		available bool
	}{
		{"startDate=2024-06-03&endDate=2024-06-07", http.StatusOK, false},
		{"startDate=2024-06-05&endDate=2024-06-07", http.StatusOK, true},
		{"startDate=2024-05-28&endDate=2024-06-01", http.StatusOK, true},
		{"startDate=2024-06-07&endDate=2024-06-05", http.StatusBadRequest, false},
		{"startDate=2024-06-07", http.StatusBadRequest, false},
		{"startDate=tomorrow&endDate=2024-06-05", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := get("/api/v1/cars/1/availability?" + tt.query)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				return
			}

			var resp models.AvailabilityResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.available, resp.Available)
			assert.Equal(t, car.ID, resp.CarID)
		})
	}

	assert.Equal(t, http.StatusNotFound, get("/api/v1/cars/404/availability?startDate=2024-06-01&endDate=2024-06-02").Code)
}
