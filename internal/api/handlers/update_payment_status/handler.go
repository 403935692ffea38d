package update_payment_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarRental/internal/api/handlers"
	"github.com/m04kA/SMC-CarRental/internal/api/middleware"
	"github.com/m04kA/SMC-CarRental/internal/service/bookings"
	"github.com/m04kA/SMC-CarRental/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "пользователь не аутентифицирован"
	msgAdminOnly          = "операция доступна только администратору"
	msgNotFound           = "бронирование не найдено"
	msgInvalidStatus      = "неизвестный статус оплаты"
	msgInvalidTransition  = "переход в этот статус оплаты запрещен"
	msgConcurrentUpdate   = "бронирование было изменено параллельно, повторите запрос"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/payment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id}/payment - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req models.UpdatePaymentStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.UpdatePaymentStatus(r.Context(), identity, bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAdminOnly):
			h.logger.Warn("PUT /bookings/{id}/payment - Not an administrator: user_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgAdminOnly)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id}/payment - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidPaymentTransition):
			h.logger.Warn("PUT /bookings/{id}/payment - Transition not allowed: booking_id=%d, payment_status=%s",
				bookingID, req.PaymentStatus)
			handlers.RespondForbidden(w, msgInvalidTransition)

		case errors.Is(err, bookings.ErrInvalidPaymentStatus):
			h.logger.Warn("PUT /bookings/{id}/payment - Invalid payment status: %q", req.PaymentStatus)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrConcurrentModification):
			h.logger.Warn("PUT /bookings/{id}/payment - Concurrent modification: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("PUT /bookings/{id}/payment - Failed to update payment status: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id}/payment - Payment status updated: booking_id=%d, payment_status=%s",
		bookingID, booking.PaymentStatus)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
