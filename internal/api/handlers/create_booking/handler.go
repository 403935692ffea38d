package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarRental/internal/api/handlers"
	"github.com/m04kA/SMC-CarRental/internal/api/middleware"
	"github.com/m04kA/SMC-CarRental/internal/domain"
	createBooking "github.com/m04kA/SMC-CarRental/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается RFC 3339 или YYYY-MM-DD"
	msgMissingIdentity    = "пользователь не аутентифицирован"
	msgCarNotFound        = "автомобиль не найден"
	msgCarNotAvailable    = "автомобиль недоступен на выбранные даты"
	msgCarNotOffered      = "автомобиль снят с проката"
	msgInvalidDates       = "дата окончания должна быть позже даты начала"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest(identity)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrCarNotAvailable):
			h.logger.Warn("POST /bookings - Car not available: user_id=%d, car_id=%d", identity.UserID, req.CarID)
			handlers.RespondConflict(w, msgCarNotAvailable)

		case errors.Is(err, createBooking.ErrCarNotOffered):
			h.logger.Warn("POST /bookings - Car not offered: user_id=%d, car_id=%d", identity.UserID, req.CarID)
			handlers.RespondConflict(w, msgCarNotOffered)

		case errors.Is(err, createBooking.ErrCarNotFound):
			h.logger.Warn("POST /bookings - Car not found: user_id=%d, car_id=%d", identity.UserID, req.CarID)
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, createBooking.ErrInvalidDates):
			h.logger.Warn("POST /bookings - Invalid dates: user_id=%d, car_id=%d", identity.UserID, req.CarID)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", identity.UserID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, car_id=%d, error=%v",
				identity.UserID, req.CarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, car_id=%d",
		result.Booking.ID, identity.UserID, req.CarID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
