package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	"github.com/m04kA/SMC-CarRental/internal/integrations/events"
)

// CarRepository интерфейс репозитория автомобилей.
// Внутри транзакции GetByID блокирует строку автомобиля.
type CarRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityChecker проверка пересечения с блокирующими бронированиями
type AvailabilityChecker interface {
	IsRangeFree(ctx context.Context, carID int64, start, end time.Time) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// KeyLocker взаимное исключение по ключу внутри процесса
type KeyLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// EventPublisher публикация событий жизненного цикла бронирования
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
