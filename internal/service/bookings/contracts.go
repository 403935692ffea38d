package bookings

import (
	"context"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	"github.com/m04kA/SMC-CarRental/internal/integrations/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error)
	GetAll(ctx context.Context) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int64, from, to domain.PaymentStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
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
