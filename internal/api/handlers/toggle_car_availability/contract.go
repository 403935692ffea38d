package toggle_car_availability

import (
	"context"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	"github.com/m04kA/SMC-CarRental/internal/service/cars/models"
)

type CarService interface {
	ToggleAvailability(ctx context.Context, identity domain.Identity, id int64) (*models.CarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
