package delete_car

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
	msgCarInUse        = "на автомобиль ссылаются бронирования"
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

// Handle DELETE /api/v1/cars/{carId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID, err := handlers.PathID(r, "carId")
	if err != nil {
		h.logger.Warn("DELETE /cars/{id} - Invalid car ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("DELETE /cars/{id} - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	if err := h.service.Delete(r.Context(), identity, carID); err != nil {
		switch {
		case errors.Is(err, cars.ErrAdminOnly):
			h.logger.Warn("DELETE /cars/{id} - Not an administrator: user_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgAdminOnly)

		case errors.Is(err, cars.ErrCarNotFound):
			h.logger.Warn("DELETE /cars/{id} - Car not found: car_id=%d", carID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cars.ErrCarInUse):
			h.logger.Warn("DELETE /cars/{id} - Car in use: car_id=%d", carID)
			handlers.RespondConflict(w, msgCarInUse)

		default:
			h.logger.Error("DELETE /cars/{id} - Failed to delete car: car_id=%d, error=%v", carID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /cars/{id} - Car deleted successfully: car_id=%d, user_id=%d", carID, identity.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
