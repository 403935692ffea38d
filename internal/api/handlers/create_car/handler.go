package create_car

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "пользователь не аутентифицирован"
	msgAdminOnly          = "операция доступна только администратору"
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

// Handle POST /api/v1/cars
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /cars - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req models.CreateCarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cars - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	car, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		switch {
		case errors.Is(err, cars.ErrAdminOnly):
			h.logger.Warn("POST /cars - Not an administrator: user_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgAdminOnly)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /cars - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /cars - Failed to create car: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cars - Car created successfully: car_id=%d, user_id=%d", car.ID, identity.UserID)
	handlers.RespondJSON(w, http.StatusCreated, car)
}
