package cars

import (
	"context"

	"github.com/m04kA/SMC-CarRental/internal/domain"
)

// CarRepository интерфейс репозитория автомобилей
type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) (*domain.Car, error)
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	List(ctx context.Context) ([]*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) (*domain.Car, error)
	ToggleAvailability(ctx context.Context, id int64) (*domain.Car, error)
	Delete(ctx context.Context, id int64) error
}

// BookingRepository проверка ссылок бронирований на автомобиль
type BookingRepository interface {
	ExistsForCar(ctx context.Context, carID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// KeyLocker взаимное исключение по ключу внутри процесса
type KeyLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
