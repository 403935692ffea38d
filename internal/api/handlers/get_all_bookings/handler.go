package get_all_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarRental/internal/api/handlers"
	"github.com/m04kA/SMC-CarRental/internal/api/middleware"
	"github.com/m04kA/SMC-CarRental/internal/service/bookings"
)

const (
	msgMissingIdentity = "пользователь не аутентифицирован"
	msgAdminOnly       = "операция доступна только администратору"
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

// Handle GET /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	result, err := h.service.GetAll(r.Context(), identity)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAdminOnly):
			h.logger.Warn("GET /bookings - Not an administrator: user_id=%d", identity.UserID)
			handlers.RespondForbidden(w, msgAdminOnly)

		default:
			h.logger.Error("GET /bookings - Failed to get bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
