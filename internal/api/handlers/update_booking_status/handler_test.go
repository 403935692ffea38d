package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CarRental/internal/api/middleware"
	"github.com/m04kA/SMC-CarRental/internal/domain"
	"github.com/m04kA/SMC-CarRental/internal/service/bookings"
	"github.com/m04kA/SMC-CarRental/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	err error
}

func (s stubService) UpdateStatus(_ context.Context, _ domain.Identity, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, Status: req.Status}, nil
}

func serve(err error, path, body string) int {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/status", NewHandler(stubService{err: err}, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithIdentity(req.Context(), domain.Identity{UserID: 7}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestHandle_StatusCodes(t *testing.T) {
	const path = "/api/v1/bookings/5/status"
	const body = `{"status":"cancelled"}`

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"stranger", bookings.ErrAccessDenied, http.StatusForbidden},
		{"terminal", bookings.ErrInvalidTransition, http.StatusForbidden},
		{"unknown status", bookings.ErrInvalidStatus, http.StatusBadRequest},
		{"race", bookings.ErrConcurrentModification, http.StatusConflict},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(tt.err, path, body))
		})
	}

	assert.Equal(t, http.StatusBadRequest, serve(nil, "/api/v1/bookings/abc/status", body))
	assert.Equal(t, http.StatusBadRequest, serve(nil, path, "{"))
}
