package create_car

import (
	"context"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	"github.com/m04kA/SMC-CarRental/internal/service/cars/models"
)

type CarService interface {
	Create(ctx context.Context, identity domain.Identity, req *models.CreateCarRequest) (*models.CarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
