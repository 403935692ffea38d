package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarRental/internal/infra/storage/booking"
	carRepo "github.com/m04kA/SMC-CarRental/internal/infra/storage/car"
	"github.com/m04kA/SMC-CarRental/internal/integrations/events"
)

// UseCase use case для создания бронирования
type UseCase struct {
	carRepo      CarRepository
	bookingRepo  BookingRepository
	availability AvailabilityChecker
	txManager    TransactionManager
	locker       KeyLocker
	publisher    EventPublisher
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	carRepo CarRepository,
	bookingRepo BookingRepository,
	availability AvailabilityChecker,
	txManager TransactionManager,
	locker KeyLocker,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		carRepo:      carRepo,
		bookingRepo:  bookingRepo,
		availability: availability,
		txManager:    txManager,
		locker:       locker,
		publisher:    publisher,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка выполняются под блокировкой автомобиля:
// в процессе через KeyLocker, в PostgreSQL через SELECT ... FOR UPDATE строки автомобиля.
// Ограничение EXCLUDE на таблице bookings страхует от записи в обход сервиса.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, car=%d, range=[%s, %s), services=%+v",
		req.Identity.UserID, req.CarID, req.StartDate.Format(time.RFC3339), req.EndDate.Format(time.RFC3339),
		req.AdditionalServices)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Сериализуем создание бронирований по автомобилю
	unlock, err := uc.locker.Lock(ctx, domain.CarLockKey(req.CarID))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to lock car id=%d: %v", req.CarID, err)
		return nil, fmt.Errorf("%w: lock car: %v", ErrInternal, err)
	}
	defer unlock()

	var (
		result *domain.Booking
		days   int
	)

	// 3. Проверка и вставка в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем автомобиль (с блокировкой строки)
		car, err := uc.carRepo.GetByID(txCtx, req.CarID)
		if err != nil {
			if errors.Is(err, carRepo.ErrCarNotFound) {
				uc.logger.Warn("CreateBooking: car id=%d not found", req.CarID)
				return ErrCarNotFound
			}
			uc.logger.Error("CreateBooking: failed to get car id=%d: %v", req.CarID, err)
			return fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
		}

		// 3.2. Снятый с проката автомобиль бронировать нельзя
		if !car.Available {
			uc.logger.Warn("CreateBooking: car id=%d is not offered for rental", req.CarID)
			return ErrCarNotOffered
		}

		// 3.3. Проверяем пересечение с блокирующими бронированиями
		free, err := uc.availability.IsRangeFree(txCtx, req.CarID, req.StartDate, req.EndDate)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed for car id=%d: %v", req.CarID, err)
			return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
		}
		if !free {
			uc.logger.Warn("CreateBooking: car id=%d is not available for selected dates", req.CarID)
			return ErrCarNotAvailable
		}

		// 3.4. Считаем стоимость
		days = domain.RentalDays(req.StartDate, req.EndDate)

		booking := &domain.Booking{
			UserID:             req.Identity.UserID,
			CarID:              car.ID,
			StartDate:          req.StartDate,
			EndDate:            req.EndDate,
			TotalPrice:         domain.TotalPrice(car.DailyPrice, days, req.AdditionalServices),
			Status:             domain.StatusPending,
			PaymentStatus:      domain.PaymentUnpaid,
			PickupLocation:     req.PickupLocation,
			DropoffLocation:    req.DropoffLocation,
			AdditionalServices: req.AdditionalServices,
		}

		// 3.5. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrOverlap):
				uc.logger.Warn("CreateBooking: exclusion constraint rejected booking for car id=%d", req.CarID)
				return ErrCarNotAvailable
			case errors.Is(err, bookingRepo.ErrCarReference):
				uc.logger.Warn("CreateBooking: car id=%d disappeared before insert", req.CarID)
				return ErrCarNotFound
			default:
				uc.logger.Error("CreateBooking: failed to create booking: %v", err)
				return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		if domain.KindOf(err) == domain.KindInternal && !errors.Is(err, ErrInternal) {
			// Ошибка фиксации транзакции
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, days=%d, total=%.2f",
		result.ID, days, result.TotalPrice)

	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.BookingCreated, result)); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return &Response{
		Booking: result,
		Days:    days,
	}, nil
}
