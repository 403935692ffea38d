package toggle_car_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarRental/internal/api/handlers"
	"github.com/m04kA/SMC-CarRental/internal/api/middleware"
	"github.com/m04kA/SMC-CarRental/internal/service/cars"
)

const (
	msgInvalidCarID    = "некорректный ID автомобиля"
	msgMissingIdentity = "пользователь не аутентифицирован"
	msgAdminOnly       = "операция доступна только администратору"
	msgNotFound        = "автомобиль не найден"
)

type Handler struct {
	service CarService
	logger  Logger
}

func NewHandler(service CarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/cars/{carId}/toggle-availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID, err := handlers.PathID(r, "carId")
	if err != nil {
		h.logger.Warn("PATCH /cars/{id}/toggle-availability - Invalid car ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("PATCH /cars/{id}/toggle-availability - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	car, err := h.service.ToggleAvailability(r.Context(), identity, carID)
	if err != nil {
		switch {
		case errors.Is(err, cars.ErrAdminOnly):
			h.logger.Warn("PATCH /cars/{id}/toggle-availability - Not an administrator: user_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgAdminOnly)

		case errors.Is(err, cars.ErrCarNotFound):
			h.logger.Warn("PATCH /cars/{id}/toggle-availability - Car not found: car_id=%d", carID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /cars/{id}/toggle-availability - Failed to toggle: car_id=%d, error=%v", carID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /cars/{id}/toggle-availability - Car availability toggled: car_id=%d, available=%t",
		carID, car.Available)
	handlers.RespondJSON(w, http.StatusOK, car)
}
