package get_my_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-CarRental/internal/api/handlers"
	"github.com/m04kA/SMC-CarRental/internal/api/middleware"
)

const (
	msgMissingIdentity = "пользователь не аутентифицирован"
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

// Handle GET /api/v1/bookings/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/me - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	result, err := h.service.GetUserBookings(r.Context(), identity)
	if err != nil {
		h.logger.Error("GET /bookings/me - Failed to get bookings: user_id=%d, error=%v", identity.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/me - Bookings retrieved successfully: user_id=%d, count=%d",
		identity.UserID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
