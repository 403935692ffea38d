package update_car

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarRental/internal/api/handlers"
	"github.com/m04kA/SMC-CarRental/internal/api/middleware"
	"github.com/m04kA/SMC-CarRental/internal/domain"
	"github.com/m04kA/SMC-CarRental/internal/service/cars"
	"github.com/m04kA/SMC-CarRental/internal/service/cars/models"
)

const (
	msgInvalidCarID       = "некорректный ID автомобиля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "пользователь не аутентифицирован"
	msgAdminOnly          = "операция доступна только администратору"
	msgNotFound           = "автомобиль не найден"
	msgIdentityLocked     = "у автомобиля есть бронирования: марку, модель, год, коробку и топливо менять нельзя"
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

// Handle PUT /api/v1/cars/{carId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID, err := handlers.PathID(r, "carId")
	if err != nil {
		h.logger.Warn("PUT /cars/{id} - Invalid car ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("PUT /cars/{id} - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req models.UpdateCarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /cars/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	car, err := h.service.Update(r.Context(), identity, carID, &req)
	if err != nil {
		switch {
		case errors.Is(err, cars.ErrAdminOnly):
			h.logger.Warn("PUT /cars/{id} - Not an administrator: user_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgAdminOnly)

		case errors.Is(err, cars.ErrCarNotFound):
			h.logger.Warn("PUT /cars/{id} - Car not found: car_id=%d", carID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cars.ErrIdentityLocked):
			h.logger.Warn("PUT /cars/{id} - Identifying fields locked: car_id=%d", carID)
			handlers.RespondConflict(w, msgIdentityLocked)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("PUT /cars/{id} - Validation failed: car_id=%d, error=%v", carID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /cars/{id} - Failed to update car: car_id=%d, error=%v", carID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /cars/{id} - Car updated successfully: car_id=%d, user_id=%d", carID, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, car)
}
