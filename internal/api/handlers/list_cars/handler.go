package list_cars

import (
	"net/http"

	"github.com/m04kA/SMC-CarRental/internal/api/handlers"
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

// Handle GET /api/v1/cars
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cars, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /cars - Failed to list cars: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /cars - Cars retrieved successfully: count=%d", len(cars))
	handlers.RespondJSON(w, http.StatusOK, cars)
}
