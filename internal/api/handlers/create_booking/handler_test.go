package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarRental/internal/api/handlers"
	"github.com/m04kA/SMC-CarRental/internal/api/middleware"
	"github.com/m04kA/SMC-CarRental/internal/domain"
	"github.com/m04kA/SMC-CarRental/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarRental/internal/integrations/events"
	"github.com/m04kA/SMC-CarRental/internal/service/availability"
	createBooking "github.com/m04kA/SMC-CarRental/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CarRental/pkg/keylock"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newHandler(t *testing.T) (*Handler, int64) {
	t.Helper()
	store := memory.NewStore()
	car, err := store.Cars().Create(context.Background(), &domain.Car{
		Make: "Toyota", Model: "Corolla", Year: 2022, DailyPrice: 50, Seats: 5,
		Transmission: domain.TransmissionAutomatic, FuelType: domain.FuelHybrid, Available: true,
	})
	require.NoError(t, err)

	checker := availability.NewService(store.Cars(), store.Bookings(), nopLogger{})
	uc := createBooking.NewUseCase(store.Cars(), store.Bookings(), checker, memory.TxManager{},
		keylock.New(), events.NopPublisher{}, nopLogger{})
	return NewHandler(uc, nopLogger{}), car.ID
}

func post(h *Handler, identity *domain.Identity, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(raw))
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), *identity))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_CreatesBooking(t *testing.T) {
	h, carID := newHandler(t)
	user := &domain.Identity{UserID: 7}

	rec := post(h, user, map[string]interface{}{
		"carId":              carID,
		"startDate":          "2024-06-01",
		"endDate":            "2024-06-04",
		"pickupLocation":     "Airport",
		"dropoffLocation":    "Downtown",
		"additionalServices": map[string]bool{"insurance": true, "gps": true},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 225.0, resp.TotalPrice)
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "unpaid", resp.PaymentStatus)
	assert.Equal(t, int64(7), resp.UserID)
	assert.True(t, resp.AdditionalServices.GPS)
}

func TestHandle_ErrorMapping(t *testing.T) {
	h, carID := newHandler(t)
	user := &domain.Identity{UserID: 7}

	valid := func(start, end string) map[string]interface{} {
		return map[string]interface{}{
			"carId": carID, "startDate": start, "endDate": end,
			"pickupLocation": "A", "dropoffLocation": "B",
		}
	}

	require.Equal(t, http.StatusCreated, post(h, user, valid("2024-06-01", "2024-06-05")).Code)

	tests := []struct {
		name     string
		identity *domain.Identity
		body     interface{}
		status   int
	}{
		{"overlap", user, valid("2024-06-03", "2024-06-07"), http.StatusConflict},
		{"end before start", user, valid("2024-06-10", "2024-06-09"), http.StatusBadRequest},
		{"bad date", user, valid("June 1st", "2024-06-09"), http.StatusBadRequest},
		{"unknown car", user, map[string]interface{}{
			"carId": 404, "startDate": "2024-07-01", "endDate": "2024-07-02",
			"pickupLocation": "A", "dropoffLocation": "B",
		}, http.StatusNotFound},
		{"missing location", user, map[string]interface{}{
			"carId": carID, "startDate": "2024-07-01", "endDate": "2024-07-02",
		}, http.StatusBadRequest},
		{"no identity", nil, valid("2024-07-01", "2024-07-02"), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(h, tt.identity, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}
