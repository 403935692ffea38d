package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarRental/internal/api/handlers"
	"github.com/m04kA/SMC-CarRental/internal/service/availability"
)

const (
	msgInvalidCarID = "некорректный ID автомобиля"
	msgMissingDates = "параметры startDate и endDate обязательны"
	msgInvalidDate  = "некорректный формат даты, ожидается RFC 3339 или YYYY-MM-DD"
	msgInvalidRange = "дата окончания должна быть позже даты начала"
	msgCarNotFound  = "автомобиль не найден"
)

type Handler struct {
	checker AvailabilityChecker
	logger  Logger
}

func NewHandler(checker AvailabilityChecker, logger Logger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

// Handle GET /api/v1/cars/{carId}/availability
// Query params: startDate, endDate (обязательные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID, err := handlers.PathID(r, "carId")
	if err != nil {
		h.logger.Warn("GET /cars/{id}/availability - Invalid car ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	query := r.URL.Query()
	startStr, endStr := query.Get("startDate"), query.Get("endDate")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /cars/{id}/availability - Missing dates: car_id=%d", carID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	start, err := handlers.ParseDate(startStr)
	if err != nil {
		h.logger.Warn("GET /cars/{id}/availability - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	end, err := handlers.ParseDate(endStr)
	if err != nil {
		h.logger.Warn("GET /cars/{id}/availability - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	available, err := h.checker.IsAvailable(r.Context(), carID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRange):
			h.logger.Warn("GET /cars/{id}/availability - Invalid range: car_id=%d", carID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, availability.ErrCarNotFound):
			h.logger.Warn("GET /cars/{id}/availability - Car not found: car_id=%d", carID)
			handlers.RespondNotFound(w, msgCarNotFound)

		default:
			h.logger.Error("GET /cars/{id}/availability - Failed to check availability: car_id=%d, error=%v", carID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /cars/{id}/availability - Availability checked: car_id=%d, available=%t", carID, available)
	handlers.RespondJSON(w, http.StatusOK, FromResult(carID, start, end, available))
}
