package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarRental/internal/domain"
)

// CarRepository поиск автомобиля
type CarRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
}

// BookingRepository поиск пересекающихся бронирований
type BookingRepository interface {
	FindOverlapping(ctx context.Context, carID int64, start, end time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
