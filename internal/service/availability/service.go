package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarRental/internal/domain"
	carRepo "github.com/m04kA/SMC-CarRental/internal/infra/storage/car"
)

// Service проверяет, свободен ли автомобиль на полуинтервал дат [start, end).
// Соседние бронирования (одно заканчивается, когда начинается другое) не пересекаются.
type Service struct {
	carRepo     CarRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(carRepo CarRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		carRepo:     carRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// IsAvailable проверяет существование автомобиля и отсутствие блокирующих бронирований
func (s *Service) IsAvailable(ctx context.Context, carID int64, start, end time.Time) (bool, error) {
	s.logger.Info("IsAvailable: car=%d, range=[%s, %s)", carID, start.Format(time.RFC3339), end.Format(time.RFC3339))

	if err := ValidateRange(start, end); err != nil {
		s.logger.Warn("IsAvailable: %v", err)
		return false, err
	}

	if _, err := s.carRepo.GetByID(ctx, carID); err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			s.logger.Warn("IsAvailable: car id=%d not found", carID)
			return false, ErrCarNotFound
		}
		s.logger.Error("IsAvailable: failed to get car id=%d: %v", carID, err)
		return false, fmt.Errorf("%w: IsAvailable - get car: %v", ErrInternal, err)
	}

	return s.IsRangeFree(ctx, carID, start, end)
}

// IsRangeFree выполняет только проверку пересечения, без поиска автомобиля.
// Вызывается внутри транзакции создания бронирования, где автомобиль уже заблокирован.
func (s *Service) IsRangeFree(ctx context.Context, carID int64, start, end time.Time) (bool, error) {
	bookings, err := s.bookingRepo.FindOverlapping(ctx, carID, start, end, domain.BlockingStatuses)
	if err != nil {
		s.logger.Error("IsRangeFree: failed to find bookings for car id=%d: %v", carID, err)
		return false, fmt.Errorf("%w: IsRangeFree - find overlapping: %v", ErrInternal, err)
	}

	for _, b := range bookings {
		if b.IsBlocking() && b.Overlaps(start, end) {
			s.logger.Info("IsRangeFree: car=%d is taken by booking id=%d", carID, b.ID)
			return false, nil
		}
	}

	return true, nil
}

// ValidateRange проверяет, что диапазон задан и не пуст
func ValidateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidRange)
	}
	if !end.After(start) {
		return ErrInvalidRange
	}
	return nil
}
